package icon

// Icon identifies a symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Warn
	Info
	Question
	Play
	Pause
	Stop
	Video
	Folder
	Task
	Search
	Remote
	TV
	Link
)

// Glyphs in variant order: plain, emoji, nerd, kaomoji, squares.
var icons = [...]glyphs{
	Success:  {"+", "🎉", "", "(ᵔᴥᵔ)", "🟩"},
	Fail:     {"x", "💀", "", "(ಥ﹏ಥ)", "🟥"},
	Warn:     {"!", "⚠️", "", "(っ˘̩╭╮˘̩)っ", "🟨"},
	Info:     {"i", "ℹ️", "", "(・_・)", "🟦"},
	Question: {"?", "❓", "", "(・・ ) ?", "🟪"},
	Play:     {">", "▶️", "", "ヽ(•‿•)ノ", "🟩"},
	Pause:    {"||", "⏸️", "", "(－_－) zzZ", "🟨"},
	Stop:     {"[]", "⏹️", "", "(╥_╥)", "⬛"},
	Video:    {"*", "🎬", "", "(⌐■_■)", "🟧"},
	Folder:   {"/", "📁", "", "(¬‿¬)", "🟫"},
	Task:     {"v", "📥", "", "(๑•̀ㅂ•́)و", "🟦"},
	Search:   {"?", "🔍", "", "(◔_◔)", "🟪"},
	Remote:   {"~", "🎮", "", "(☞ﾟヮﾟ)☞", "🟩"},
	TV:       {"#", "📺", "", "[̲̅(ツ)]", "🟦"},
	Link:     {"@", "🔗", "", "(•̀ᴗ•́)", "⬜"},
}
