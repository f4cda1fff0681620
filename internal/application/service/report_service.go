package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/retailhub-api/internal/application/report"
	"github.com/sangkips/retailhub-api/internal/domain/entity"
	"github.com/sangkips/retailhub-api/internal/domain/repository"
	"github.com/sangkips/retailhub-api/pkg/apperror"
	"github.com/sangkips/retailhub-api/pkg/export"
	"github.com/sangkips/retailhub-api/pkg/pagination"
)

// ReportService loads report rows from their sources and shapes them
type ReportService struct {
	saleRepo     repository.SaleRepository
	stockRepo    repository.StockRepository
	payrollRepo  repository.CRUDRepository[entity.Payroll]
	employeeRepo repository.CRUDRepository[entity.Employee]
	accountRepo  repository.CRUDRepository[entity.BankAccount]
}

// NewReportService creates a new report service
func NewReportService(
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
	payrollRepo repository.CRUDRepository[entity.Payroll],
	employeeRepo repository.CRUDRepository[entity.Employee],
	accountRepo repository.CRUDRepository[entity.BankAccount],
) *ReportService {
	return &ReportService{
		saleRepo:     saleRepo,
		stockRepo:    stockRepo,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		accountRepo:  accountRepo,
	}
}

// ReportTable is one page of a shaped report
type ReportTable struct {
	Definition report.Definition      `json:"definition"`
	Columns    []string               `json:"columns"`
	Rows       []report.Row           `json:"rows"`
	Pagination *pagination.Pagination `json:"pagination"`
	Summary    report.Summary         `json:"summary"`
}

// Definitions lists the report catalog
func (s *ReportService) Definitions() []report.Definition {
	return report.Catalog()
}

func (s *ReportService) definition(id string) (report.Definition, error) {
	def, ok := report.Find(id)
	if !ok {
		return report.Definition{}, apperror.NewNotFoundError("Report")
	}
	return def, nil
}

// Run filters the report rows and returns the requested page with a
// summary over every matching row.
func (s *ReportService) Run(ctx context.Context, reportID string, criteria report.Criteria, params *pagination.PaginationParams) (*ReportTable, error) {
	def, err := s.definition(reportID)
	if err != nil {
		return nil, err
	}

	columns, rows, err := s.shape(ctx, def, criteria)
	if err != nil {
		return nil, err
	}

	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	return &ReportTable{
		Definition: def,
		Columns:    columns,
		Rows:       report.Paginate(rows, params.PerPage, params.Page),
		Pagination: pagination.NewPagination(params.Page, params.PerPage, int64(len(rows))),
		Summary:    report.Summarize(rows),
	}, nil
}

// Dataset returns every matching row of a report for export
func (s *ReportService) Dataset(ctx context.Context, reportID string, criteria report.Criteria) (export.Dataset, error) {
	def, err := s.definition(reportID)
	if err != nil {
		return export.Dataset{}, err
	}
	columns, rows, err := s.shape(ctx, def, criteria)
	if err != nil {
		return export.Dataset{}, err
	}
	return export.Dataset{Name: def.Name, Columns: columns, Rows: rows}, nil
}

// Datasets returns a dataset per catalog entry, for the all-reports archive
func (s *ReportService) Datasets(ctx context.Context, criteria report.Criteria) ([]export.Dataset, error) {
	defs := report.Catalog()
	sets := make([]export.Dataset, 0, len(defs))
	for _, def := range defs {
		columns, rows, err := s.shape(ctx, def, criteria)
		if err != nil {
			return nil, err
		}
		sets = append(sets, export.Dataset{Name: def.Name, Columns: columns, Rows: rows})
	}
	return sets, nil
}

func (s *ReportService) shape(ctx context.Context, def report.Definition, criteria report.Criteria) ([]string, []report.Row, error) {
	rows, err := s.load(ctx, def.Source, criteria.From, criteria.To)
	if err != nil {
		return nil, nil, err
	}
	columns := report.BuildColumns(def)
	return columns, report.Project(report.FilterRows(rows, criteria), columns), nil
}

// load reads the source rows, narrowing by date in the database where the
// source supports it. to is widened to the end of its day.
func (s *ReportService) load(ctx context.Context, source report.Source, from, to *time.Time) ([]report.Row, error) {
	if to != nil {
		end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 999999999, to.Location())
		to = &end
	}

	switch source {
	case report.SourceSales, report.SourceSaleItems:
		sales, err := s.saleRepo.Between(ctx, from, to)
		if err != nil {
			return nil, err
		}
		if source == report.SourceSaleItems {
			return report.SaleItemRows(sales), nil
		}
		return report.SaleRows(sales), nil

	case report.SourceStockAdjustments:
		adjustments, err := s.stockRepo.AdjustmentsBetween(ctx, from, to)
		if err != nil {
			return nil, err
		}
		return report.AdjustmentRows(adjustments), nil

	case report.SourceStockTransfers:
		transfers, err := s.stockRepo.TransfersBetween(ctx, from, to)
		if err != nil {
			return nil, err
		}
		return report.TransferRows(transfers), nil

	case report.SourcePayroll:
		payrolls, err := s.payrollRepo.All(ctx, nil)
		if err != nil {
			return nil, err
		}
		employees, err := s.employeeRepo.All(ctx, nil)
		if err != nil {
			return nil, err
		}
		names := make(map[uuid.UUID]string, len(employees))
		for _, e := range employees {
			names[e.ID] = e.Name
		}
		return report.PayrollRows(payrolls, names), nil

	case report.SourceBankAccounts:
		accounts, err := s.accountRepo.All(ctx, nil)
		if err != nil {
			return nil, err
		}
		return report.AccountRows(accounts), nil
	}

	return nil, apperror.NewBadRequestError("Unknown report source " + string(source))
}
