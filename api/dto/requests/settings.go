// ABOUTME: Request DTOs for the settings endpoints

package requests

// UpdateSettingsRequest changes stored settings; nil fields are left as they are
type UpdateSettingsRequest struct {
	// SheetID accepts a bare id or a full spreadsheet URL
	SheetID *string `json:"sheetId,omitempty" doc:"Spreadsheet id or URL"`

	// LicenseKey set to "" removes the stored key
	LicenseKey *string `json:"licenseKey,omitempty" doc:"AI license key; empty string clears it"`
}
