package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/dustin/go-humanize"

	apierrors "github.com/gaolamthuy/storefront/common/apierrors"
	"github.com/gaolamthuy/storefront/common/telemetry/attributes"
	commonmetric "github.com/gaolamthuy/storefront/common/telemetry/metric"
	commontrace "github.com/gaolamthuy/storefront/common/telemetry/trace"
	"github.com/gaolamthuy/storefront/storefront/src/catalog"
	"github.com/gaolamthuy/storefront/storefront/src/models"
)

const priceListSheet = "Bảng giá"

var (
	headerStyleJSON = `{
		"border": [
			{"type": "left", "color": "#000000", "style": 1},
			{"type": "top", "color": "#000000", "style": 1},
			{"type": "right", "color": "#000000", "style": 1},
			{"type": "bottom", "color": "#000000", "style": 1}
		],
		"fill": {"type": "pattern", "pattern": 1, "color": ["#96b753"]},
		"font": {"bold": true},
		"alignment": {"horizontal": "center"}
	}`
	cellStyleJSON = `{
		"border": [
			{"type": "left", "color": "#000000", "style": 1},
			{"type": "top", "color": "#000000", "style": 1},
			{"type": "right", "color": "#000000", "style": 1},
			{"type": "bottom", "color": "#000000", "style": 1}
		]
	}`
	priceListHeader = []string{"Danh mục", "Mã", "Sản phẩm", "Đơn vị", "Giá", "Giá hiển thị", "Ghi chú"}
)

// PriceList exports the category-ordered catalog as an xlsx sheet with one
// row per product and one extra row per child product and per packaging unit.
func (s *catalogService) PriceList(ctx context.Context) (file PriceListFile, appErr *apierrors.AppError) {
	timer := commonmetric.StartMetricsTimer(layer, "price_list")
	ctx, span := commontrace.StartSpan(ctx)
	defer func() { finish(ctx, span, timer, appErr) }()

	snap, appErr := s.load(ctx)
	if appErr != nil {
		return file, appErr
	}
	if snap.degraded != nil {
		return file, snap.degraded
	}
	if len(snap.masters) == 0 {
		return file, apierrors.NewBusinessError(apierrors.ErrCodeEmptyCatalog, "No products to export", nil)
	}

	products := catalog.SortByCategory(snap.masters, s.opts.CategoryOrder, catalog.SortByPrice)
	content, err := s.renderPriceList(products)
	if err != nil {
		s.logger.ErrorContext(ctx, "Price list rendering failed", slog.Any("error", err))
		return file, apierrors.NewApplicationError(apierrors.ErrCodeInternalProcessing, "Failed to build price list", err)
	}

	file = PriceListFile{
		Name:    fmt.Sprintf("bang_gia_%s.xlsx", time.Now().Format("20060102_150405")),
		Content: content,
	}
	span.SetAttributes(attributes.AttrProductCountKey.Int(len(products)))
	s.logger.InfoContext(ctx, "Price list generated",
		slog.String("products", humanize.Comma(int64(len(products)))),
		slog.String("size", humanize.Bytes(uint64(len(content)))))
	return file, nil
}

func (s *catalogService) renderPriceList(products []models.Product) ([]byte, error) {
	f := excelize.NewFile()
	f.NewSheet(priceListSheet)
	f.DeleteSheet("Sheet1")

	if err := f.SetColWidth(priceListSheet, "A", "A", 20); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(priceListSheet, "B", "B", 12); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(priceListSheet, "C", "C", 45); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(priceListSheet, "D", "G", 16); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(headerStyleJSON)
	if err != nil {
		return nil, err
	}
	cellStyle, err := f.NewStyle(cellStyleJSON)
	if err != nil {
		return nil, err
	}

	sw, err := f.NewStreamWriter(priceListSheet)
	if err != nil {
		return nil, err
	}

	header := make([]interface{}, len(priceListHeader))
	for i, h := range priceListHeader {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, err
	}

	rowNum := 2
	writeRow := func(category, code, name, unit string, price int64, note string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		rowNum++
		return sw.SetRow(cell, []interface{}{
			excelize.Cell{StyleID: cellStyle, Value: category},
			excelize.Cell{StyleID: cellStyle, Value: code},
			excelize.Cell{StyleID: cellStyle, Value: name},
			excelize.Cell{StyleID: cellStyle, Value: unit},
			excelize.Cell{StyleID: cellStyle, Value: price},
			excelize.Cell{StyleID: cellStyle, Value: s.prices.Currency(price)},
			excelize.Cell{StyleID: cellStyle, Value: note},
		})
	}

	for _, p := range products {
		if err := writeRow(p.CategoryName, p.Code, p.FullName, p.Unit, p.Price, ""); err != nil {
			return nil, err
		}
		for _, c := range p.ChildProducts {
			if err := writeRow(p.CategoryName, p.Code, c.FullName, c.Unit, c.Price, "Loại khác"); err != nil {
				return nil, err
			}
		}
		for _, u := range p.Units {
			note := ""
			if !u.AllowsSale {
				note = "Không bán lẻ"
			}
			if err := writeRow(p.CategoryName, u.Code, firstNonEmpty(u.Name, p.FullName), u.Unit, u.Price, note); err != nil {
				return nil, err
			}
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
