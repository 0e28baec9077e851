package docs

// Function is the upstream description of one API entry point.
type Function struct {
	// Name is the canonical entry-point name and the cache identity.
	Name string `yaml:"name" json:"name"`
	// TrimmedName is the alternate form with type suffixes removed
	// (Uniform for Uniform4fv). Empty means Name.
	TrimmedName string `yaml:"trimmed_name,omitempty" json:"trimmed_name,omitempty"`
	// Parameters are the declared parameter names in order.
	Parameters []string `yaml:"parameters,omitempty" json:"parameters,omitempty"`
}

// Trimmed returns TrimmedName, or Name when no alternate form is set.
func (f Function) Trimmed() string {
	if f.TrimmedName == "" {
		return f.Name
	}
	return f.TrimmedName
}

// Parameter is one documented parameter.
type Parameter struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
}

// Documentation is the extracted summary and parameter descriptions of a function.
// Values handed out by a Context must be treated as immutable.
type Documentation struct {
	Summary    string      `yaml:"summary" json:"summary"`
	Parameters []Parameter `yaml:"parameters" json:"parameters"`
}

// EmptyDocumentation returns the placeholder used when no documentation is
// available: an empty summary and one empty description per declared parameter.
func EmptyDocumentation(fn Function) *Documentation {
	params := make([]Parameter, 0, len(fn.Parameters))
	for _, name := range fn.Parameters {
		params = append(params, Parameter{Name: name})
	}
	return &Documentation{Parameters: params}
}
