package constant

// AsciiArtLogo is the application's banner shown in the root help.
const AsciiArtLogo = `
 _                                 _
| |___   ___ __ ___ _ __ ___   ___| |_ ___
| __\ \ / / '__/ _ \ '_ ` + "`" + ` _ \ / _ \ __/ _ \
| |_ \ V /| | |  __/ | | | | | (_) | ||  __/
 \__| \_/ |_|  \___|_| |_| |_|\___/ \__\___|`
