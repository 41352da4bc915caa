package request

// Model is a marshalable request payload.
type Model interface {
	ToBytes() ([]byte, error)
}
