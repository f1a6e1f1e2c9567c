// Package badge renders classification results into a PNG badge image.
// The renderer is deterministic: identical inputs produce byte-identical
// output, which keeps cached entries stable.
package badge

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"image/png"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"

	"github.com/Radz112/bonding-curve-exit-badge/internal/domain"
)

// Badge dimensions.
const (
	badgeWidth  = 800
	badgeHeight = 650
)

// Input is the flat record the renderer consumes.
type Input struct {
	BadgeTitle    string
	BadgeColor    domain.BadgeColor
	ExitType      string
	ExitVenue     string
	TokenSymbol   string
	Wallet        string
	Token         string
	SellTimestamp int64 // Unix seconds
	Confidence    domain.Confidence
}

// InputFrom builds renderer input from a classification result.
func InputFrom(res *domain.ClassificationResult) Input {
	return Input{
		BadgeTitle:    res.BadgeTitle,
		BadgeColor:    res.BadgeColor,
		ExitType:      res.ExitType,
		ExitVenue:     res.ExitVenue,
		TokenSymbol:   res.TokenSymbol,
		Wallet:        res.Wallet,
		Token:         res.Token,
		SellTimestamp: res.SellTimestamp,
		Confidence:    res.Confidence,
	}
}

// scheme holds the color palette for one badge color.
type scheme struct {
	primary   string
	gradStart string
	gradEnd   string
	accent    string
	bg        string
}

var schemes = map[domain.BadgeColor]scheme{
	domain.BadgeRed: {
		primary:   "#DC2626",
		gradStart: "#7F1D1D",
		gradEnd:   "#DC2626",
		accent:    "#FCA5A5",
		bg:        "#1A0A0A",
	},
	domain.BadgeGold: {
		primary:   "#F59E0B",
		gradStart: "#78350F",
		gradEnd:   "#F59E0B",
		accent:    "#FDE68A",
		bg:        "#1A1400",
	},
	domain.BadgePlatinum: {
		primary:   "#94A3B8",
		gradStart: "#334155",
		gradEnd:   "#94A3B8",
		accent:    "#CBD5E1",
		bg:        "#0F172A",
	},
}

var confidenceColors = map[domain.Confidence]string{
	domain.ConfidenceHigh:   "#22C55E",
	domain.ConfidenceMedium: "#F59E0B",
	domain.ConfidenceLow:    "#EF4444",
}

// Renderer draws badges. Font faces are parsed once at construction.
type Renderer struct {
	title  font.Face // bold 26
	symbol font.Face // bold 24
	pill   font.Face // bold 12
	body   font.Face // regular 14
	small  font.Face // regular 12
	footer font.Face // regular 10
}

// NewRenderer creates a badge renderer.
func NewRenderer() (*Renderer, error) {
	bold, err := truetype.Parse(gomonobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	regular, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}

	face := func(f *truetype.Font, size float64) font.Face {
		return truetype.NewFace(f, &truetype.Options{Size: size})
	}

	return &Renderer{
		title:  face(bold, 26),
		symbol: face(bold, 24),
		pill:   face(bold, 12),
		body:   face(regular, 14),
		small:  face(regular, 12),
		footer: face(regular, 10),
	}, nil
}

// Render draws the badge and returns it as a PNG data URI.
func (r *Renderer) Render(in Input) (string, error) {
	c, ok := schemes[in.BadgeColor]
	if !ok {
		return "", fmt.Errorf("unknown badge color %q", in.BadgeColor)
	}

	dc := gg.NewContext(badgeWidth, badgeHeight)
	cx := float64(badgeWidth) / 2

	// Background
	dc.SetHexColor(c.bg)
	dc.Clear()

	// Outer border; a wider translucent stroke underneath stands in for
	// a glow.
	dc.SetLineWidth(9)
	dc.SetRGBA(hexRGB(c.primary, 0.25))
	dc.DrawRoundedRectangle(20, 20, badgeWidth-40, badgeHeight-40, 16)
	dc.Stroke()
	dc.SetLineWidth(3)
	dc.SetHexColor(c.primary)
	dc.DrawRoundedRectangle(20, 20, badgeWidth-40, badgeHeight-40, 16)
	dc.Stroke()

	// Medal disc with radial gradient and accent rings
	const (
		medalY = 140.0
		medalR = 70.0
	)
	grad := gg.NewRadialGradient(cx, medalY, 10, cx, medalY, medalR)
	grad.AddColorStop(0, hexColor(c.gradEnd))
	grad.AddColorStop(1, hexColor(c.gradStart))
	dc.SetFillStyle(grad)
	dc.DrawCircle(cx, medalY, medalR)
	dc.Fill()

	dc.SetLineWidth(2)
	dc.SetHexColor(c.accent)
	dc.DrawCircle(cx, medalY, medalR)
	dc.Stroke()
	dc.DrawCircle(cx, medalY, medalR-14)
	dc.Stroke()
	dc.DrawCircle(cx, medalY, medalR-28)
	dc.Stroke()

	// Token symbol
	dc.SetFontFace(r.symbol)
	dc.SetHexColor(c.accent)
	dc.DrawStringAnchored(in.TokenSymbol, cx, 242, 0.5, 0.5)

	// Title
	dc.SetFontFace(r.title)
	dc.SetHexColor(c.primary)
	dc.DrawStringAnchored(in.BadgeTitle, cx, 283, 0.5, 0.5)

	// Venue subtitle
	dc.SetFontFace(r.body)
	dc.SetRGBA(hexRGB(c.accent, 0.8))
	dc.DrawStringAnchored(in.ExitVenue, cx, 312, 0.5, 0.5)

	// Confidence pill
	confColor := confidenceColors[in.Confidence]
	confText := string(in.Confidence) + " CONFIDENCE"
	dc.SetFontFace(r.pill)
	textW, _ := dc.MeasureString(confText)
	pillW := textW + 20
	pillX := cx - pillW/2
	const pillY = 335.0

	dc.SetRGBA(hexRGB(confColor, 0.2))
	dc.DrawRoundedRectangle(pillX, pillY, pillW, 22, 11)
	dc.Fill()
	dc.SetLineWidth(1)
	dc.SetHexColor(confColor)
	dc.DrawRoundedRectangle(pillX, pillY, pillW, 22, 11)
	dc.Stroke()
	dc.DrawStringAnchored(confText, cx, pillY+11, 0.5, 0.5)

	// Divider
	dc.SetRGBA(hexRGB(c.primary, 0.3))
	dc.SetLineWidth(1)
	dc.DrawLine(100, 375, badgeWidth-100, 375)
	dc.Stroke()

	// Detail rows
	rows := []struct{ label, value string }{
		{"WALLET", truncAddr(in.Wallet)},
		{"TOKEN", truncAddr(in.Token)},
		{"EXIT DATE", formatDate(in.SellTimestamp)},
	}
	dc.SetFontFace(r.small)
	for i, row := range rows {
		y := 400 + float64(i)*30
		dc.SetHexColor("#6B7280")
		dc.DrawStringAnchored(row.label, 100, y, 0, 0.5)
		dc.SetHexColor("#D1D5DB")
		dc.DrawStringAnchored(row.value, 230, y, 0, 0.5)
	}

	// Flavor line
	dc.SetFontFace(r.body)
	dc.SetHexColor(c.primary)
	dc.DrawStringAnchored(`"`+in.ExitType+`"`, cx, 515, 0.5, 0.5)

	// Footer
	dc.SetFontFace(r.footer)
	dc.SetHexColor("#374151")
	dc.DrawStringAnchored("Verified on-chain by APIX402 - Bonding Curve Exit Badge v2", cx, 600, 0.5, 0.5)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return "", fmt.Errorf("encode badge png: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// truncAddr shortens an address for the detail rows.
func truncAddr(addr string) string {
	if len(addr) <= 16 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

// formatDate renders a Unix timestamp as a UTC date.
func formatDate(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("2006-01-02")
}

// hexColor parses "#RRGGBB" into a color.Color.
func hexColor(s string) color.Color {
	r, g, b := hexComponents(s)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// hexRGB returns the components of "#RRGGBB" scaled to [0,1] plus an
// alpha, for gg.SetRGBA.
func hexRGB(s string, alpha float64) (float64, float64, float64, float64) {
	r, g, b := hexComponents(s)
	return float64(r) / 255, float64(g) / 255, float64(b) / 255, alpha
}

func hexComponents(s string) (uint8, uint8, uint8) {
	var r, g, b uint8
	fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)
	return r, g, b
}
