package prenomina

import (
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"prenomina-service/internal/domain"
)

// Service define la interfaz del pipeline de pre-nómina.
type Service interface {
	// Process runs the full pipeline and returns the enriched, joined
	// preview plus the creditor set and retained payments.
	Process(nominaFile, tesoreriaFile io.Reader, fechaReferencia time.Time) (*domain.ProcessResult, error)
	// GenerateWorkbook runs the pipeline and renders the per-creditor
	// multi-sheet workbook as .xlsx bytes.
	GenerateWorkbook(nominaFile, tesoreriaFile io.Reader, fechaReferencia time.Time) ([]byte, error)
}

type service struct {
	logger *zap.Logger
	cache  *loaderCache
}

// NewService crea una nueva instancia del servicio de pre-nómina.
func NewService(logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{logger: logger, cache: newLoaderCache()}
}

func (s *service) Process(nominaFile, tesoreriaFile io.Reader, fechaReferencia time.Time) (*domain.ProcessResult, error) {
	ledger, pagos, err := s.loadInputs(nominaFile, tesoreriaFile)
	if err != nil {
		return nil, err
	}

	enriched := enrichMetrics(ledger, fechaReferencia)
	cuentas := creditorSet(pagos)
	preview := joinLedger(enriched, cuentas)

	return &domain.ProcessResult{Preview: preview, Cuentas: cuentas, Pagos: pagos}, nil
}

func (s *service) GenerateWorkbook(nominaFile, tesoreriaFile io.Reader, fechaReferencia time.Time) ([]byte, error) {
	ledger, pagos, err := s.loadInputs(nominaFile, tesoreriaFile)
	if err != nil {
		return nil, err
	}

	// Las hojas se generan sobre el ledger enriquecido completo, una por
	// acreedor de tesorería.
	enriched := enrichMetrics(ledger, fechaReferencia)
	return buildWorkbook(enriched, creditorSet(pagos))
}

// loadInputs reads both uploads fully and runs the two loaders, which have
// no data dependency on each other, in parallel. Either table ending up
// empty after filtering stops the run with an EmptyResultError.
func (s *service) loadInputs(nominaFile, tesoreriaFile io.Reader) (*domain.Table, []domain.TreasuryPayment, error) {
	nominaData, err := io.ReadAll(nominaFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error al leer el archivo de nómina: %w", err)
	}
	tesoreriaData, err := io.ReadAll(tesoreriaFile)
	if err != nil {
		return nil, nil, fmt.Errorf("error al leer el archivo de tesorería: %w", err)
	}

	var (
		ledger *domain.Table
		pagos  []domain.TreasuryPayment
	)
	g := new(errgroup.Group)
	g.Go(func() error {
		var err error
		ledger, err = s.loadNomina(nominaData)
		return err
	})
	g.Go(func() error {
		var err error
		pagos, err = s.loadTesoreria(tesoreriaData)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if ledger.IsEmpty() {
		return nil, nil, &EmptyResultError{File: FileNomina, Reason: "ninguna fila superó los filtros de cuenta, bloqueo y fechas"}
	}
	if len(pagos) == 0 {
		return nil, nil, &EmptyResultError{File: FileTesoreria, Reason: fmt.Sprintf("ningún pago alcanzó el umbral de %d", importeUmbral)}
	}
	return ledger, pagos, nil
}

func (s *service) loadNomina(data []byte) (*domain.Table, error) {
	key := contentKey(data)
	if ledger, ok := s.cache.ledger(key); ok {
		s.logger.Debug("nómina resuelta desde la caché", zap.String("clave", key[:12]))
		return ledger, nil
	}

	raw, err := readWorkbook(data)
	if err != nil {
		return nil, fmt.Errorf("error al leer la planilla de nómina: %w", err)
	}
	ledger, err := s.transformNomina(raw)
	if err != nil {
		return nil, err
	}
	s.cache.putLedger(key, ledger)
	return ledger, nil
}

func (s *service) loadTesoreria(data []byte) ([]domain.TreasuryPayment, error) {
	key := contentKey(data)
	if pagos, ok := s.cache.payments(key); ok {
		s.logger.Debug("tesorería resuelta desde la caché", zap.String("clave", key[:12]))
		return pagos, nil
	}

	raw, err := readWorkbook(data)
	if err != nil {
		return nil, fmt.Errorf("error al leer la planilla de tesorería: %w", err)
	}
	pagos, err := s.transformTesoreria(raw)
	if err != nil {
		return nil, err
	}
	s.cache.putPayments(key, pagos)
	return pagos, nil
}
