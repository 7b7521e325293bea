package controller

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	qrcode "github.com/skip2/go-qrcode"

	helper "protokolku_backend/internals/helpers"
)

// Ukuran PNG: tampilan inline vs unduhan resolusi tinggi.
const (
	qrDisplaySize  = 256
	qrDownloadSize = 512
)

type BarcodeController struct{}

func NewBarcodeController() *BarcodeController {
	return &BarcodeController{}
}

// Render: GET /barcode/:code.png — QR inline untuk tampilan.
func (ctrl *BarcodeController) Render(c *fiber.Ctx) error {
	return ctrl.renderPNG(c, qrDisplaySize, false)
}

// Download: GET /download/barcode/:code.png — QR besar sebagai attachment.
func (ctrl *BarcodeController) Download(c *fiber.Ctx) error {
	return ctrl.renderPNG(c, qrDownloadSize, true)
}

func (ctrl *BarcodeController) renderPNG(c *fiber.Ctx, size int, attachment bool) error {
	code := c.Params("code")
	if code == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Kode tidak boleh kosong")
	}

	png, err := qrcode.Encode(code, qrcode.Medium, size)
	if err != nil {
		log.Printf("[ERROR] QR code generation error: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "QR code generation error")
	}

	if attachment {
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="qrcode-%s.png"`, code))
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}
