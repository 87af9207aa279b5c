package model

// Credential is the ephemeral driver login minted at dispatch time.
// One per dispatch event, deactivated when the trip leaves the
// Dispatched state. The plaintext secret lives only in the dispatch
// response.
type Credential struct {
	Username     string
	Email        string
	PasswordHash []byte
	FullName     string
	DriverId     string
}
