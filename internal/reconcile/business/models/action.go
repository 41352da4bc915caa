package models

// Action is the reconciliation path chosen for one supplier product.
type Action int

const (
	ActionSkip Action = iota
	ActionCreate
	ActionUpdate
	ActionRecreate
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionRecreate:
		return "recreate"
	default:
		return "skip"
	}
}
