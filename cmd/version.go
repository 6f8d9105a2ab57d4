package cmd

import (
	"context"
	"runtime"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tvremote/tvremote/color"
	"github.com/tvremote/tvremote/config"
	"github.com/tvremote/tvremote/constant"
	"github.com/tvremote/tvremote/style"
	"github.com/tvremote/tvremote/version"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolP("short", "s", false, "Only print the version number")
}

var versionTemplate = lo.Must(template.New("version").Funcs(template.FuncMap{
	"faint":   style.Faint,
	"bold":    style.Bold,
	"magenta": style.Fg(color.Purple),
}).Parse(`{{ magenta "▇▇▇" }} {{ magenta .App }}

  {{ faint "Version" }}   {{ bold .Version }}
  {{ faint "Platform" }}  {{ bold .OS }}/{{ bold .Arch }}
  {{ faint "Server" }}    {{ bold .Server }}
`))

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("short")) {
			cmd.Println(constant.Version)
			return
		}

		handleErr(versionTemplate.Execute(cmd.OutOrStdout(), map[string]string{
			"App":     constant.App,
			"Version": constant.Version,
			"OS":      runtime.GOOS,
			"Arch":    runtime.GOARCH,
			"Server":  config.Host(),
		}))
		version.Notify(context.Background(), cmd.OutOrStdout())
	},
}
