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
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ProposalLine is one quotation row sourced from a BOQ item.
type ProposalLine struct {
	SINo        int
	Description string
	Unit        string
	Qty         float64
	Rate        float64
	GSTPercent  float64
	BeforeGST   float64
	GSTAmount   float64
	Total       float64
}

// ProposalExport holds all data needed to generate a proposal PDF.
type ProposalExport struct {
	CompanyName string
	ProjectName string
	ClientName  string
	Reference   string
	Date        string
	Lines       []ProposalLine
	Totals      ProposalTotals
	Notes       string
}

// GenerateProposalPDF creates a client-facing quotation document from the
// selected BOQ items and returns the raw PDF bytes.
func GenerateProposalPDF(data *ProposalExport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
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

	addProposalHeader(m, data)
	addProposalLinesTable(m, data)
	addProposalTotals(m, data)
	addProposalAmountInWords(m, data)
	addProposalNotes(m, data)
	addProposalSignatures(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate proposal PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addProposalHeader adds company name, "PROPOSAL" title, project/client block.
func addProposalHeader(m core.Maroto, data *ProposalExport) {
	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New(data.CompanyName, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New("PROPOSAL", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
		),
	)

	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Left,
	}
	rightValueStyle := props.Text{
		Size:  8,
		Align: align.Right,
	}

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("PROJECT", labelStyle)),
			col.New(6).Add(text.New(fmt.Sprintf("Ref: %s", data.Reference), rightValueStyle)),
		),
		row.New(7).Add(
			col.New(6).Add(text.New(data.ProjectName, props.Text{
				Size:  9,
				Style: fontstyle.Bold,
				Align: align.Left,
			})),
			col.New(6).Add(text.New(fmt.Sprintf("Date: %s", data.Date), rightValueStyle)),
		),
	)

	if data.ClientName != "" {
		m.AddRows(
			row.New(7).Add(
				col.New(12).Add(text.New(fmt.Sprintf("Client: %s", data.ClientName), valueStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addProposalLinesTable adds the quotation line table.
func addProposalLinesTable(m core.Maroto, data *ProposalExport) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("SI No", headerText)).WithStyle(&headerCell),
			col.New(4).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Unit", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Rate", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Before GST", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("GST%", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("GST Amt", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Total", headerText)).WithStyle(&headerCell),
		),
	)

	altBg := &props.Color{Red: 248, Green: 249, Blue: 250}

	for i, line := range data.Lines {
		bodyText := props.Text{Size: 7, Align: align.Center}
		bodyTextLeft := props.Text{Size: 7, Align: align.Left}
		bodyTextRight := props.Text{Size: 7, Align: align.Right}

		var cellStyle *props.Cell
		if i%2 == 1 {
			cellStyle = &props.Cell{BackgroundColor: altBg}
		}

		cols := []core.Col{
			col.New(1).Add(text.New(fmt.Sprintf("%d", line.SINo), bodyText)),
			col.New(4).Add(text.New(line.Description, bodyTextLeft)),
			col.New(1).Add(text.New(FormatQty(line.Qty), bodyTextRight)),
			col.New(1).Add(text.New(line.Unit, bodyText)),
			col.New(1).Add(text.New(FormatINR(line.Rate), bodyTextRight)),
			col.New(1).Add(text.New(FormatINR(line.BeforeGST), bodyTextRight)),
			col.New(1).Add(text.New(fmt.Sprintf("%.0f%%", line.GSTPercent), bodyText)),
			col.New(1).Add(text.New(FormatINR(line.GSTAmount), bodyTextRight)),
			col.New(1).Add(text.New(FormatINR(line.Total), bodyTextRight)),
		}

		if cellStyle != nil {
			for j := range cols {
				cols[j] = cols[j].WithStyle(cellStyle)
			}
		}

		m.AddRows(row.New(7).Add(cols...))
	}

	m.AddRows(row.New(2))
}

// addProposalTotals adds right-aligned total rows.
func addProposalTotals(m core.Maroto, data *ProposalExport) {
	summaryBg := &props.Color{Red: 245, Green: 245, Blue: 245}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Right,
	}

	m.AddRows(
		row.New(7).Add(
			col.New(9).Add(text.New("Total Before Tax", labelStyle)).WithStyle(summaryCell),
			col.New(3).Add(text.New(FormatINR(data.Totals.TotalBeforeTax), valueStyle)).WithStyle(summaryCell),
		),
		row.New(7).Add(
			col.New(9).Add(text.New(fmt.Sprintf("GST %.0f%%", data.Totals.GSTPercent), labelStyle)).WithStyle(summaryCell),
			col.New(3).Add(text.New(FormatINR(data.Totals.GSTAmount), valueStyle)).WithStyle(summaryCell),
		),
		row.New(7).Add(
			col.New(9).Add(text.New("Round Off", labelStyle)).WithStyle(summaryCell),
			col.New(3).Add(text.New(FormatINR(data.Totals.RoundOff), valueStyle)).WithStyle(summaryCell),
		),
	)

	grandBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	grandCell := &props.Cell{BackgroundColor: grandBg}
	grandStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}

	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("Grand Total", grandStyle)).WithStyle(grandCell),
			col.New(3).Add(text.New(FormatINR(data.Totals.GrandTotal), grandStyle)).WithStyle(grandCell),
		),
	)

	m.AddRows(row.New(3))
}

// addProposalAmountInWords adds the amount in words row.
func addProposalAmountInWords(m core.Maroto, data *ProposalExport) {
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("Amount in Words: %s", AmountToWords(data.Totals.GrandTotal)), props.Text{
					Size:  8,
					Style: fontstyle.BoldItalic,
					Align: align.Left,
				}),
			),
		),
	)

	m.AddRows(row.New(3))
}

// addProposalNotes adds the notes section if non-empty.
func addProposalNotes(m core.Maroto, data *ProposalExport) {
	if data.Notes == "" {
		return
	}

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New("NOTES", props.Text{
				Size:  7,
				Style: fontstyle.Bold,
				Align: align.Left,
				Color: &props.Color{Red: 100, Green: 100, Blue: 100},
			})),
		),
		row.New(7).Add(
			col.New(12).Add(text.New(data.Notes, props.Text{
				Size:  8,
				Align: align.Left,
			})),
		),
	)

	m.AddRows(row.New(3))
}

// addProposalSignatures adds the signature section at the bottom.
func addProposalSignatures(m core.Maroto) {
	m.AddRows(row.New(10))

	lineStyle := props.Text{
		Size:  8,
		Align: align.Center,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("____________________________", lineStyle)),
			col.New(6).Add(text.New("____________________________", lineStyle)),
		),
	)

	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}

	m.AddRows(
		row.New(7).Add(
			col.New(6).Add(text.New("Client Signature", labelStyle)),
			col.New(6).Add(text.New("Authorized Signatory", labelStyle)),
		),
	)
}
