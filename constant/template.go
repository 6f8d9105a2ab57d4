package constant

// ExampleFrames is printed by `tvremote protocol example` as a starting point for hand-written frames.
const ExampleFrames = `{"Play":{"url":"http://{{ .Host }}/api/media/{{ .Collection }}/{{ .Video }}","collection":"{{ .Collection }}","video":"{{ .Video }}"}}
{"Seek":{"interval":-15}}
{"TogglePause":""}
{"Stop":""}
`
