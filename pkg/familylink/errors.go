package familylink

import "fmt"

// APIError is a non-2xx response from the Family Link API.
type APIError struct {
	StatusCode int
	Status     string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("family link API error on %s: %s", e.Endpoint, e.Status)
}

// AppNotFoundError means a display name could not be resolved to a package
// name. It is distinct from transport failures.
type AppNotFoundError struct {
	Name string
}

func (e *AppNotFoundError) Error() string {
	return fmt.Sprintf("app not found: %q", e.Name)
}

// DeviceNotFoundError means a device name or id did not match any known
// device.
type DeviceNotFoundError struct {
	Name string
}

func (e *DeviceNotFoundError) Error() string {
	return fmt.Sprintf("device not found: %q", e.Name)
}
