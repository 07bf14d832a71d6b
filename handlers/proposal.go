package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"sitetracker/services"
)

// ProposalRequest is the body for POST /api/projects/{projectId}/proposal.
// Item order in ItemIDs drives the line order in the document.
type ProposalRequest struct {
	ItemIDs     []string `json:"item_ids"`
	CompanyName string   `json:"company_name"`
	GSTPercent  float64  `json:"gst_percent"`
	Notes       string   `json:"notes"`
}

func (r ProposalRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ItemIDs, validation.Required, validation.Length(1, 0)),
		validation.Field(&r.GSTPercent, validation.Min(0.0), validation.Max(100.0)),
	)
}

// HandleProposalPDF returns a handler for POST /api/projects/{projectId}/proposal.
// It builds a client-facing quotation from the selected BOQ items and streams
// the PDF as a download.
func HandleProposalPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return apiError(e, http.StatusBadRequest, "Missing project id")
		}

		project, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("proposal: could not find project %s: %v", projectID, err)
			return apiError(e, http.StatusNotFound, "Project not found")
		}

		var req ProposalRequest
		if err := e.BindBody(&req); err != nil {
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}
		if err := req.Validate(); err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		var lines []services.ProposalLine
		var calcs []services.ProposalLineCalc
		for _, id := range req.ItemIDs {
			record, err := app.FindRecordById("boq_items", id)
			if err != nil {
				log.Printf("proposal: item %s not found, skipping: %v", id, err)
				continue
			}
			if record.GetString("project") != projectID {
				log.Printf("proposal: item %s belongs to another project, skipping", id)
				continue
			}

			item := itemFromRecord(record)
			calc := services.CalcProposalLine(item.Rate, item.Quantity, req.GSTPercent)
			calcs = append(calcs, calc)
			lines = append(lines, services.ProposalLine{
				SINo:        len(lines) + 1,
				Description: item.ItemName,
				Unit:        item.Unit,
				Qty:         calc.Qty,
				Rate:        calc.Rate,
				GSTPercent:  calc.GSTPercent,
				BeforeGST:   calc.BeforeGST,
				GSTAmount:   calc.GSTAmount,
				Total:       calc.Total,
			})
		}

		if len(lines) == 0 {
			return apiError(e, http.StatusBadRequest, "No valid items selected")
		}

		companyName := req.CompanyName
		if companyName == "" {
			companyName = "Site Tracker"
		}

		pdfBytes, err := services.GenerateProposalPDF(&services.ProposalExport{
			CompanyName: companyName,
			ProjectName: project.GetString("name"),
			ClientName:  project.GetString("client"),
			Reference:   project.GetString("reference_number"),
			Date:        time.Now().Format("02 Jan 2006"),
			Lines:       lines,
			Totals:      services.CalcProposalTotals(calcs),
			Notes:       req.Notes,
		})
		if err != nil {
			log.Printf("proposal: failed to generate PDF: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Proposal_%s_%s.pdf",
			sanitizeFilename(project.GetString("name")),
			time.Now().Format("2006-01-02"))

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
