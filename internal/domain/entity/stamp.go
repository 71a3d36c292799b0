package entity

// Alignment selects which bottom corner a command stamp is anchored to.
// Right is the primary approver; left is a subordinate counter-signature.
type Alignment string

const (
	AlignRight Alignment = "right"
	AlignLeft  Alignment = "left"
)

// ReceiveNumberRequest asks for a registry-number stamp on an existing document.
type ReceiveNumberRequest struct {
	Document        string `json:"document"`           // EncodedBlob of the source PDF
	Page            int    `json:"page,omitempty"`     // 1-based, clamped; 0 means page 1
	RegistryNumber  string `json:"registry_number"`    // เลขรับที่
	Date            Date   `json:"date"`               // Gregorian date, rendered in the Buddhist era
	Time            string `json:"time"`               // HH:MM
	OrgName         string `json:"org_name"`           // Receiving organization
	OrgLogo         string `json:"org_logo,omitempty"` // Optional EncodedBlob raster logo
	LocalizedDigits bool   `json:"localized_digits"`   // Render digits in Thai numerals
}

// CommandStampRequest asks for a command/signature stamp. An empty Document
// synthesizes a fresh page (a stand-alone directive slip).
type CommandStampRequest struct {
	Document         string    `json:"document,omitempty"`
	Page             int       `json:"page,omitempty"`
	CommandText      string    `json:"command_text"`
	SignerName       string    `json:"signer_name"`
	SignerTitle      string    `json:"signer_title"`
	Signature        string    `json:"signature,omitempty"` // Optional EncodedBlob raster signature
	OrgName          string    `json:"org_name"`
	SignatureScale   float64   `json:"signature_scale"`    // 0 means 1
	SignatureYOffset float64   `json:"signature_y_offset"` // Points, positive raises the signature
	Alignment        Alignment `json:"alignment"`
	Date             Date      `json:"date"` // Zero means the render date
	LocalizedDigits  bool      `json:"localized_digits"`
}
