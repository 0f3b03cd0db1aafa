package utils

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// TableQRCode renders the ordering URL for a table as a PNG. Customers
// scan it to open the menu with the table preselected.
func TableQRCode(baseURL string, tableNumber int, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	url := fmt.Sprintf("%s/order?table=%d", baseURL, tableNumber)
	return qrcode.Encode(url, qrcode.Medium, size)
}
