package types

// ValidateOutput is the output type for the shapegen_validate tool.
type ValidateOutput struct {
	Summary      ValidationSummary  `json:"summary"`
	Results      []SampleValidation `json:"results,omitzero"`
	CommonErrors []CommonError      `json:"common_errors,omitempty"`
	// Schema is the JSON Schema the samples were checked against.
	Schema any `json:"schema,omitempty"`
}

// ValidationSummary summarizes the validation results.
type ValidationSummary struct {
	TotalSamples  int  `json:"total_samples"`
	MatchingCount int  `json:"matching_count"`
	FailedCount   int  `json:"failed_count"`
	AllMatch      bool `json:"all_match"`
}

// SampleValidation contains the validation result for one sample.
type SampleValidation struct {
	Index  int      `json:"index"`
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// CommonError represents a frequently occurring validation error.
type CommonError struct {
	Error     string `json:"error"`
	Frequency int    `json:"frequency"`
}
