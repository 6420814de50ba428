package cover

import (
	"fmt"
	"hash/fnv"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

const (
	coverWidth  = 1280
	coverHeight = 720
	thumbWidth  = 320
)

// palette 封面底色候选，按标题哈希选取，同一标题生成结果稳定
var palette = []color.RGBA{
	{R: 0x2c, G: 0x3e, B: 0x50, A: 0xff},
	{R: 0x8e, G: 0x44, B: 0xad, A: 0xff},
	{R: 0x27, G: 0x60, B: 0x8b, A: 0xff},
	{R: 0x16, G: 0x69, B: 0x5c, A: 0xff},
	{R: 0xb0, G: 0x53, B: 0x2a, A: 0xff},
	{R: 0x5d, G: 0x4e, B: 0x60, A: 0xff},
}

// Generate 为视频生成占位封面和缩略图。
// 正式封面由后续处理替换，这里只保证列表页有图可显示
func Generate(title, coverPath, thumbPath string) error {
	if err := os.MkdirAll(filepath.Dir(coverPath), 0755); err != nil {
		return fmt.Errorf("创建封面目录失败: %w", err)
	}

	dc := gg.NewContext(coverWidth, coverHeight)

	// 底色
	bg := pickColor(title)
	dc.SetColor(bg)
	dc.Clear()

	// 中央卡片
	margin := 80.0
	dc.SetRGBA(1, 1, 1, 0.12)
	dc.DrawRoundedRectangle(margin, margin, coverWidth-2*margin, coverHeight-2*margin, 24)
	dc.Fill()

	// 标题文字
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(1, 1, 1)
	dc.DrawStringWrapped(title, coverWidth/2, coverHeight/2, 0.5, 0.5,
		coverWidth-4*margin, 2.0, gg.AlignCenter)

	if err := dc.SavePNG(coverPath + ".png"); err != nil {
		return fmt.Errorf("保存封面失败: %w", err)
	}

	// 转成 jpg 并生成缩略图
	img, err := imaging.Open(coverPath + ".png")
	if err != nil {
		return fmt.Errorf("读取封面失败: %w", err)
	}
	if err := imaging.Save(img, coverPath, imaging.JPEGQuality(85)); err != nil {
		return fmt.Errorf("保存封面失败: %w", err)
	}
	os.Remove(coverPath + ".png")

	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	if err := imaging.Save(thumb, thumbPath, imaging.JPEGQuality(80)); err != nil {
		return fmt.Errorf("保存缩略图失败: %w", err)
	}

	return nil
}

// pickColor 按标题哈希选取底色
func pickColor(title string) color.RGBA {
	h := fnv.New32a()
	h.Write([]byte(title))
	return palette[int(h.Sum32())%len(palette)]
}
