package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF renders the survey export as a paginated PDF: the summary
// fields as label/value lines followed by the details table. Returns the
// raw PDF bytes.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addPDFTitle(m, data)
	addPDFSummary(m, data)
	addPDFDetailHeader(m)
	for _, r := range data.Details {
		addPDFDetailRow(m, r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addPDFTitle(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)
	m.AddRows(row.New(4))
}

// addPDFSummary writes each summary field as a "Label: value" line. Empty
// note fields are skipped so a sparse survey stays one page.
func addPDFSummary(m core.Maroto, data ExportData) {
	labelText := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Left,
	}
	valueText := props.Text{
		Size:  9,
		Align: align.Left,
		Color: &props.Color{Red: 60, Green: 60, Blue: 60},
	}

	for _, field := range data.Summary {
		if field.Value == "" {
			continue
		}
		m.AddRows(
			row.New(6).Add(
				col.New(4).Add(text.New(field.Label+":", labelText)),
				col.New(8).Add(text.New(field.Value, valueText)),
			),
		)
	}
	m.AddRows(row.New(6))
}

func addPDFDetailHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(2).Add(text.New("Section", headerTextLeft)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Code", headerText)).WithStyle(&headerCell),
			col.New(4).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Cost", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Rechg", headerText)).WithStyle(&headerCell),
		),
	)
}

func addPDFDetailRow(m core.Maroto, r DetailRow) {
	baseText := props.Text{
		Size:  7,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	// Free-form rows have no code; show the contractor there instead so the
	// PDF keeps its column count.
	code := r.Code
	if code == "" {
		code = r.Contractor
	}
	qty := r.Quantity
	if qty == "" {
		qty = r.Time
	}

	desc := r.Description
	if desc == "" {
		desc = r.Comment
	}

	m.AddRows(
		row.New(6).Add(
			col.New(2).Add(text.New(r.Section, leftText)),
			col.New(2).Add(text.New(code, baseText)),
			col.New(4).Add(text.New(desc, leftText)),
			col.New(1).Add(text.New(qty, rightText)),
			col.New(2).Add(text.New(r.Cost, rightText)),
			col.New(1).Add(text.New(r.Recharge, baseText)),
		),
	)
}
