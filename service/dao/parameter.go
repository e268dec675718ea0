package dao

// Parameter narrows a List call; unknown parameter names are ignored by the
// concrete stores.
type Parameter struct {
	Name  string
	Value interface{}
}

func NewParameter(name string, values ...interface{}) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}
