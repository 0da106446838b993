package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"t3chadvance/coaching-app/internal/domain"
	"t3chadvance/coaching-app/internal/repository"

	"github.com/jung-kurt/gofpdf"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrBusinessPlanNotFound   = errors.New("no responses found for this user")
	ErrBusinessPlanValidation = errors.New("business plan validation failed")
)

const reportWatermark = "T3ch Advance"

// BusinessPlanService stores a user's business-plan answers and renders
// them into a branded PDF report.
type BusinessPlanService interface {
	SaveResponse(ctx context.Context, userID string, quizAnswers []domain.BusinessPlanQuizAnswer, writtenAnswers []domain.BusinessPlanWrittenAnswer) (*domain.BusinessPlanResponse, error)
	GetResponse(ctx context.Context, userID string) (*domain.BusinessPlanResponse, error)
	GeneratePDF(ctx context.Context, userID string) ([]byte, error)
}

type businessPlanService struct {
	planRepo repository.BusinessPlanRepository
	userRepo repository.UserRepository
}

// NewBusinessPlanService creates a new instance of businessPlanService.
func NewBusinessPlanService(planRepo repository.BusinessPlanRepository, userRepo repository.UserRepository) BusinessPlanService {
	return &businessPlanService{planRepo: planRepo, userRepo: userRepo}
}

// SaveResponse stores the user's full answer set, replacing any earlier
// submission. Each user keeps exactly one response document.
func (s *businessPlanService) SaveResponse(ctx context.Context, userID string, quizAnswers []domain.BusinessPlanQuizAnswer, writtenAnswers []domain.BusinessPlanWrittenAnswer) (*domain.BusinessPlanResponse, error) {
	if userID == "" {
		return nil, ErrBusinessPlanValidation
	}
	if len(quizAnswers) == 0 && len(writtenAnswers) == 0 {
		return nil, ErrBusinessPlanValidation
	}

	response := &domain.BusinessPlanResponse{
		UserID:         userID,
		QuizAnswers:    quizAnswers,
		WrittenAnswers: writtenAnswers,
	}
	if err := s.planRepo.Upsert(ctx, response); err != nil {
		return nil, fmt.Errorf("saving business plan response: %w", err)
	}
	return response, nil
}

// GetResponse returns the user's stored answers.
func (s *businessPlanService) GetResponse(ctx context.Context, userID string) (*domain.BusinessPlanResponse, error) {
	response, err := s.planRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBusinessPlanNotFound
		}
		return nil, err
	}
	return response, nil
}

// GeneratePDF renders the user's answers into an A4 report with the
// company watermark. Returns the raw PDF bytes.
func (s *businessPlanService) GeneratePDF(ctx context.Context, userID string) ([]byte, error) {
	response, err := s.planRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBusinessPlanNotFound
		}
		return nil, err
	}

	// The display name is cosmetic; fall back to the raw ID if the
	// account lookup fails.
	displayName := userID
	if oid, idErr := primitive.ObjectIDFromHex(userID); idErr == nil {
		if user, userErr := s.userRepo.GetByID(ctx, oid); userErr == nil {
			displayName = user.Name
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pageW, pageH := pdf.GetPageSize()

	pdf.SetFooterFunc(func() {
		pdf.SetDrawColor(189, 195, 199)
		pdf.SetLineWidth(0.3)
		pdf.Line(15, pageH-25, pageW-15, pageH-25)
		pdf.SetY(pageH - 22)
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(127, 140, 141)
		pdf.CellFormat(0, 6, "This document contains confidential business information.", "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	addWatermark(pdf, reportWatermark)

	// Header.
	pdf.SetFont("Helvetica", "B", 28)
	pdf.SetTextColor(44, 62, 80)
	pdf.CellFormat(0, 14, "Business Plan Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(127, 140, 141)
	pdf.CellFormat(0, 7, fmt.Sprintf("Generated on: %s", time.Now().Format("2006-01-02")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("User: %s", displayName), "", 1, "C", false, 0, "")

	pdf.SetDrawColor(189, 195, 199)
	pdf.SetLineWidth(0.6)
	pdf.Line(15, pdf.GetY()+4, pageW-15, pdf.GetY()+4)
	pdf.Ln(12)

	writeSectionTitle(pdf, "Quiz Responses")
	if len(response.QuizAnswers) > 0 {
		for i, qa := range response.QuizAnswers {
			writeQuestionAnswer(pdf, i+1, qa.Question, qa.SelectedAnswer)
		}
	} else {
		writeEmptySection(pdf, "No quiz responses found.")
	}
	pdf.Ln(8)

	writeSectionTitle(pdf, "Written Responses")
	if len(response.WrittenAnswers) > 0 {
		for i, wa := range response.WrittenAnswers {
			writeQuestionAnswer(pdf, i+1, wa.Question, wa.Answer)
		}
	} else {
		writeEmptySection(pdf, "No written responses found.")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering business plan PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// addWatermark draws the company name diagonally across the page at low
// opacity, behind the content drawn afterwards.
func addWatermark(pdf *gofpdf.Fpdf, text string) {
	pageW, pageH := pdf.GetPageSize()

	pdf.SetAlpha(0.05, "Normal")
	pdf.SetFont("Helvetica", "B", 72)
	pdf.SetTextColor(0, 0, 0)

	pdf.TransformBegin()
	pdf.TransformRotate(45, pageW/2, pageH/2)
	textW := pdf.GetStringWidth(text)
	pdf.Text(pageW/2-textW/2, pageH/2, text)
	pdf.TransformEnd()

	pdf.SetAlpha(1.0, "Normal")
}

func writeSectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(52, 73, 94)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.Ln(3)
}

func writeQuestionAnswer(pdf *gofpdf.Fpdf, num int, question, answer string) {
	pdf.SetFillColor(236, 240, 241)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(44, 62, 80)
	pdf.MultiCell(0, 9, fmt.Sprintf("Q%d. %s", num, question), "", "L", true)
	pdf.Ln(2)

	pdf.SetX(pdf.GetX() + 5)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(39, 174, 96)
	answerLabelW := pdf.GetStringWidth("Answer: ") + 2
	pdf.CellFormat(answerLabelW, 6, "Answer:", "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.MultiCell(0, 6, answer, "", "L", false)
	pdf.Ln(4)
}

func writeEmptySection(pdf *gofpdf.Fpdf, msg string) {
	pdf.SetFont("Helvetica", "I", 12)
	pdf.SetTextColor(231, 76, 60)
	pdf.CellFormat(0, 7, msg, "", 1, "L", false, 0, "")
}
