package dag

type InvalidDagError struct {
	ErrorMsg string
}

func (m *InvalidDagError) Error() string {
	return m.ErrorMsg
}

type InvalidComponentError struct {
	ErrorMsg string
}

func (m *InvalidComponentError) Error() string {
	return m.ErrorMsg
}
