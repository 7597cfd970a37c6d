package api

import (
	"bytes"
	"encoding/base64"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/skip2/go-qrcode"
)

// skuBarcodePNG renders a product SKU as a Code128 barcode PNG
func skuBarcodePNG(sku string) ([]byte, error) {
	code, err := code128.Encode(sku)
	if err != nil {
		return nil, err
	}

	scaled, err := barcode.Scale(code, 400, 120)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// orderQRCodePNG renders the order status link as a QR code, base64-encoded
// for embedding in a JSON response.
func orderQRCodePNG(orderID string) (string, error) {
	data, err := qrcode.Encode("/order/"+orderID, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(data), nil
}
