package model

import "fmt"

const UnknownDuration = "desconhecido"

// ProcessDuration is the whole-day span between withdrawal and delivery (or today).
// Known is false when the dates could not be interpreted.
type ProcessDuration struct {
	Days  int
	Known bool
}

func (d ProcessDuration) String() string {
	if !d.Known {
		return UnknownDuration
	}
	return fmt.Sprintf("%d dias", d.Days)
}
