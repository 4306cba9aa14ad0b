package tsi

import "fmt"

// ValidationError reports invalid caller input. It is always raised before
// any network call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "tsi: " + e.Reason
}

// QueryError reports a server-side error envelope on a query response,
// usually wrong formatting of the query arguments.
type QueryError struct {
	Code    string
	Message string
}

func (e *QueryError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tsi: query failed (%s): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("tsi: query failed (%s), check the format of the query arguments", e.Code)
}

// StoreError is raised when a warm-store query hits an environment without
// warm storage provisioned.
type StoreError struct {
	Environment string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("tsi: warm store not enabled in environment %q, set use_warm_store to false", e.Environment)
}

// EnvironmentError is raised when no environment with the configured display
// name exists for the authenticated principal.
type EnvironmentError struct {
	Environment string
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("tsi: environment %q not found, check the spelling or create it in Azure TSI", e.Environment)
}
