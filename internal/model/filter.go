package model

// RecordsFilter matches conjunctively. Empty sets match nothing; the
// component service treats nil sets as "every known value".
type RecordsFilter struct {
	Statuses []Status
	Tags     []string
	From     Date
	To       Date
}

type ComponentView struct {
	Record   Record
	Duration ProcessDuration
}

type StatusReport struct {
	Generated Date
	Groups    []StatusGroup
}

type StatusGroup struct {
	Status Status
	Items  []ComponentView
}
