// Package chart 将难度曲线渲染为 PNG 图像
package chart

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/gonewx/spawncycler/pkg/analyzer"
	"golang.org/x/image/font/basicfont"
)

// Series 一条带标签的曲线
type Series struct {
	Label string
	Curve analyzer.Curve
}

// Options 渲染选项
type Options struct {
	Width  int
	Height int
	Title  string
}

// DefaultOptions 返回默认渲染选项
func DefaultOptions() Options {
	return Options{Width: 960, Height: 540, Title: "Difficulty"}
}

var (
	BgColor     = parseHexColor("#1E1E24")
	AxisColor   = parseHexColor("#C8C8D0")
	GridColor   = parseHexColor("#3A3A44")
	TextColor   = parseHexColor("#ECF0F1")
	ClampColor  = parseHexColor("#E74C3C")
	SeriesColor = []color.RGBA{
		parseHexColor("#F39C12"),
		parseHexColor("#3498DB"),
		parseHexColor("#2ECC71"),
		parseHexColor("#9B59B6"),
		parseHexColor("#E74C3C"),
		parseHexColor("#1ABC9C"),
		parseHexColor("#F1C40F"),
		parseHexColor("#E67E22"),
		parseHexColor("#95A5A6"),
		parseHexColor("#D35400"),
	}
)

// 绘图区边距
const (
	marginLeft   = 72.0
	marginRight  = 24.0
	marginTop    = 40.0
	marginBottom = 48.0
	gridLines    = 5
)

// Render 渲染一条或多条难度曲线
// X 轴固定为 0-100%，超出 100% 的排空阶段被截断；Y 轴上限取所有曲线的最大值
func Render(series []Series, opts Options) (image.Image, error) {
	if opts.Width < 200 || opts.Height < 150 {
		return nil, fmt.Errorf("chart size must be at least 200x150, got %dx%d", opts.Width, opts.Height)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("no series to render")
	}

	w, h := float64(opts.Width), float64(opts.Height)
	plotW := w - marginLeft - marginRight
	plotH := h - marginTop - marginBottom

	maxY := 0.0
	for _, s := range series {
		maxY = math.Max(maxY, s.Curve.Peak())
	}
	maxY = niceCeil(maxY)

	toX := func(x float64) float64 { return marginLeft + plotW*math.Min(x, 100)/100 }
	toY := func(y float64) float64 { return marginTop + plotH*(1-y/maxY) }

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(BgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	// 网格与刻度
	dc.SetLineWidth(1)
	for i := 0; i <= gridLines; i++ {
		frac := float64(i) / gridLines

		y := marginTop + plotH*(1-frac)
		dc.SetColor(GridColor)
		dc.DrawLine(marginLeft, y, w-marginRight, y)
		dc.Stroke()
		dc.SetColor(TextColor)
		dc.DrawStringAnchored(formatScore(maxY*frac), marginLeft-8, y, 1, 0.5)

		x := marginLeft + plotW*frac
		dc.SetColor(GridColor)
		dc.DrawLine(x, marginTop, x, marginTop+plotH)
		dc.Stroke()
		dc.SetColor(TextColor)
		dc.DrawStringAnchored(fmt.Sprintf("%d%%", int(frac*100)), x, marginTop+plotH+14, 0.5, 0.5)
	}

	// 得分上限
	if maxY >= analyzer.MaxScore {
		dc.SetColor(ClampColor)
		dc.SetDash(6, 4)
		dc.DrawLine(marginLeft, toY(analyzer.MaxScore), w-marginRight, toY(analyzer.MaxScore))
		dc.Stroke()
		dc.SetDash()
	}

	// 坐标轴
	dc.SetColor(AxisColor)
	dc.SetLineWidth(2)
	dc.DrawLine(marginLeft, marginTop, marginLeft, marginTop+plotH)
	dc.DrawLine(marginLeft, marginTop+plotH, w-marginRight, marginTop+plotH)
	dc.Stroke()

	// 曲线
	dc.SetLineWidth(2)
	for i, s := range series {
		if len(s.Curve) == 0 {
			continue
		}
		dc.SetColor(SeriesColor[i%len(SeriesColor)])
		dc.MoveTo(toX(s.Curve[0].X), toY(s.Curve[0].Y))
		for _, p := range s.Curve[1:] {
			if p.X > 100 {
				break
			}
			dc.LineTo(toX(p.X), toY(p.Y))
		}
		dc.Stroke()
	}

	// 标题与图例
	dc.SetColor(TextColor)
	dc.DrawStringAnchored(opts.Title, w/2, marginTop/2, 0.5, 0.5)
	dc.DrawStringAnchored("wave progress", marginLeft+plotW/2, h-12, 0.5, 0.5)
	legendY := marginTop + 10
	for i, s := range series {
		if s.Label == "" {
			continue
		}
		dc.SetColor(SeriesColor[i%len(SeriesColor)])
		dc.DrawRectangle(w-marginRight-110, legendY-5, 10, 10)
		dc.Fill()
		dc.SetColor(TextColor)
		dc.DrawStringAnchored(s.Label, w-marginRight-94, legendY, 0, 0.5)
		legendY += 16
	}

	return dc.Image(), nil
}

// RenderCycle 将整个 SpawnCycle 的各波曲线叠加在一张图上
func RenderCycle(report *analyzer.CycleReport, opts Options) (image.Image, error) {
	series := make([]Series, 0, len(report.Waves))
	for _, w := range report.Waves {
		series = append(series, Series{Label: fmt.Sprintf("Wave %d", w.Wave), Curve: w.Curve})
	}
	return Render(series, opts)
}

// Encode 以 PNG 格式写出图像
func Encode(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode chart: %w", err)
	}
	return nil
}

// Save 保存图像，格式由扩展名决定
func Save(path string, img image.Image) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save chart %s: %w", path, err)
	}
	return nil
}

// Thumbnail 按宽度等比缩小图像
func Thumbnail(img image.Image, width int) image.Image {
	return imaging.Resize(img, width, 0, imaging.Lanczos)
}

// niceCeil 把坐标轴上限向上取整到 1、2、5 乘以 10 的幂
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 5, 10} {
		if v <= m*exp {
			return m * exp
		}
	}
	return 10 * exp
}

// formatScore 刻度文字，千以上使用 k 后缀
func formatScore(v float64) string {
	if v >= 1000 {
		return fmt.Sprintf("%.0fk", v/1000)
	}
	return fmt.Sprintf("%.0f", v)
}

// parseHexColor 将 #RRGGBB 或 #RRGGBBAA 转换为颜色
func parseHexColor(s string) color.RGBA {
	c := color.RGBA{0, 0, 0, 255}
	switch len(s) {
	case 7:
		fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	}
	return c
}
