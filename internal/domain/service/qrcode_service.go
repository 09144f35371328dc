package service

// QRCodeService defines the interface for QR code generation. The café
// displays a fullscreen code that walk-up guests scan to open the menu.
type QRCodeService interface {
	// GenerateMenuQR renders the menu URL as a PNG QR code.
	GenerateMenuQR() ([]byte, error)

	// MenuURL returns the URL the QR code points at.
	MenuURL() string
}
