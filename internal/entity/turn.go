package entity

// Turn - the bot's own mark and the mark the server waits for.
type Turn struct {
	Sign       Mark `json:"sign"`
	WaitingFor Mark `json:"waitingFor"`
}

// MyTurn - the server names the next mover in WaitingFor; an empty value means nobody moves.
func (that Turn) MyTurn() bool {
	return that.Sign != "" && that.WaitingFor == that.Sign
}

// Observe - records that the mark has just played.
func (that Turn) Observe(played Mark) Turn {
	that.WaitingFor = played.Opponent()
	return that
}
