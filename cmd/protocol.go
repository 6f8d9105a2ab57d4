package cmd

import (
	"bufio"
	"os"
	"text/template"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/tvremote/tvremote/config"
	"github.com/tvremote/tvremote/constant"
	"github.com/tvremote/tvremote/message"
)

func init() {
	rootCmd.AddCommand(protocolCmd)
	protocolCmd.AddCommand(protocolSchemaCmd, protocolExampleCmd, protocolDecodeCmd)

	protocolSchemaCmd.Flags().BoolP("command", "c", false, "Schema of the Media API remote command body instead")
	protocolExampleCmd.Flags().StringP("collection", "c", "films", "Collection used in the example")
	protocolExampleCmd.Flags().StringP("video", "V", "example.mp4", "Video used in the example")
}

var protocolCmd = &cobra.Command{
	Use:   "protocol",
	Short: "Describe the remote control messages",
}

var protocolSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of remote control messages",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		reflector := jsonschema.Reflector{ExpandedStruct: true}

		var schema *jsonschema.Schema
		if lo.Must(cmd.Flags().GetBool("command")) {
			schema = reflector.Reflect(&struct {
				RemoteAddress string       `json:"remoteAddress" jsonschema:"description=Destination hint"`
				Message       message.Wire `json:"message"`
			}{})
		} else {
			schema = reflector.Reflect(&message.Wire{})
		}
		schema.Title = constant.App + " remote message"
		printJSON(cmd, schema)
	},
}

var protocolExampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print example frames, one per line",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		t := lo.Must(template.New("example").Parse(constant.ExampleFrames))
		handleErr(t.Execute(cmd.OutOrStdout(), map[string]string{
			"Host":       config.Host(),
			"Collection": lo.Must(cmd.Flags().GetString("collection")),
			"Video":      lo.Must(cmd.Flags().GetString("video")),
		}))
	},
}

var protocolDecodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode frames read from stdin, one per line",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			m, err := message.Decode(line)
			switch {
			case err != nil:
				cmd.PrintErrln(err)
			case m == nil:
				cmd.PrintErrln("unknown message")
			default:
				cmd.Println(describe(m))
			}
		}
		handleErr(scanner.Err())
	},
}
