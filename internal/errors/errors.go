package errors

// DataNotFoundError is raised when a class directory yields no valid files
// after capping and content filtering. The message must tell the user where
// the pipeline looked and what it expected to find.
type DataNotFoundError struct {
	ErrorMsg string
}

func (m *DataNotFoundError) Error() string {
	return m.ErrorMsg
}

// IOFailure is raised when a file in the dataset index cannot be read.
// It always carries the offending path.
type IOFailure struct {
	Path     string
	ErrorMsg string
}

func (m *IOFailure) Error() string {
	return m.ErrorMsg
}

// AlignmentError is raised when the feature matrix, label vector and dataset
// index disagree on length or positional order. Correct pipeline code never
// produces it; truncating or padding to hide it is not an option.
type AlignmentError struct {
	ErrorMsg string
}

func (m *AlignmentError) Error() string {
	return m.ErrorMsg
}

// ExternalServiceError wraps a failure from the featurizer or trainer
// collaborators. The pipeline does not retry; retry policy belongs to the
// collaborator or the caller.
type ExternalServiceError struct {
	Service  string
	ErrorMsg string
}

func (m *ExternalServiceError) Error() string {
	return m.ErrorMsg
}
