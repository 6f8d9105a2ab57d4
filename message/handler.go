package message

// Handler receives one call per variant. Adding a variant adds a method here,
// so every implementation stops compiling until it handles the new case.
type Handler interface {
	OnPlay(Play)
	OnStop(Stop)
	OnTogglePause(TogglePause)
	OnCommand(Command)
	OnSeek(Seek)
	OnState(State)
	OnError(Error)
}

// Dispatch routes m to the matching Handler method. A nil message is ignored.
func Dispatch(m Message, h Handler) {
	if m == nil {
		return
	}
	m.accept(h)
}

// HandlerFuncs adapts optional functions to a Handler. Nil fields ignore their variant.
type HandlerFuncs struct {
	Play        func(Play)
	Stop        func(Stop)
	TogglePause func(TogglePause)
	Command     func(Command)
	Seek        func(Seek)
	State       func(State)
	Error       func(Error)
}

func (f HandlerFuncs) OnPlay(m Play) {
	if f.Play != nil {
		f.Play(m)
	}
}

func (f HandlerFuncs) OnStop(m Stop) {
	if f.Stop != nil {
		f.Stop(m)
	}
}

func (f HandlerFuncs) OnTogglePause(m TogglePause) {
	if f.TogglePause != nil {
		f.TogglePause(m)
	}
}

func (f HandlerFuncs) OnCommand(m Command) {
	if f.Command != nil {
		f.Command(m)
	}
}

func (f HandlerFuncs) OnSeek(m Seek) {
	if f.Seek != nil {
		f.Seek(m)
	}
}

func (f HandlerFuncs) OnState(m State) {
	if f.State != nil {
		f.State(m)
	}
}

func (f HandlerFuncs) OnError(m Error) {
	if f.Error != nil {
		f.Error(m)
	}
}
