package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"tuning-portal/internal/repositories"
)

type ReportServiceInterface interface {
	BuildOrdersWorkbook(ctx context.Context) (*excelize.File, error)
}

// ReportService renders the order book as an xlsx workbook for the admin
// dashboard export.
type ReportService struct {
	orderRepo repositories.OrderRepositoryInterface
	userRepo  repositories.UserRepositoryInterface
	logger    *zap.Logger
}

func NewReportService(
	orderRepo repositories.OrderRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	logger *zap.Logger,
) ReportServiceInterface {
	return &ReportService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

var ordersReportHeaders = []string{
	"N° commande", "Client", "Email", "Service", "Prix", "Statut", "Paiement",
	"Immatriculation", "Fichiers", "Créée le", "Terminée le", "Annulée le",
}

func (s *ReportService) BuildOrdersWorkbook(ctx context.Context) (*excelize.File, error) {
	orders, err := s.orderRepo.GetOrders(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.UserID)
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	for col, header := range ordersReportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
		f.SetCellStyle(sheet, cell, cell, style)
	}

	for row, o := range orders {
		clientName, clientEmail := "", ""
		if u, ok := users[o.UserID]; ok {
			clientName = u.FullName()
			clientEmail = u.Email
		}
		values := []interface{}{
			o.OrderNumber, clientName, clientEmail, o.ServiceName,
			fmt.Sprintf("%.2f", o.Price), o.Status, o.PaymentStatus,
			o.Immatriculation, len(o.Files), formatDate(&o.CreatedAt),
			formatDate(o.CompletedAt), formatDate(o.CancelledAt),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	return f, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}
