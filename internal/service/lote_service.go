package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trazabilidad/internal/dto"
	"trazabilidad/internal/infra"
	"trazabilidad/internal/model"
	"trazabilidad/internal/qr"
	"trazabilidad/internal/repository"
	"trazabilidad/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// JobDispatcher is satisfied by *worker.Dispatcher. A nil JobDispatcher
// disables the background label and alert jobs.
type JobDispatcher interface {
	EnqueueEtiquetaQR(ctx context.Context, p worker.EtiquetaJobPayload) error
	EnqueueEmail(ctx context.Context, p worker.EmailJobPayload) error
}

// LoteConfig holds the settings the production ledger needs.
type LoteConfig struct {
	PublicBaseURL     string
	QualityAlertEmail string
	QR                qr.Config
}

// LoteService is the production ledger.
type LoteService interface {
	Crear(ctx context.Context, req dto.CrearLoteRequest) (*dto.LoteResponse, error)
	Listar(ctx context.Context, f dto.LoteFilter) ([]dto.LoteResponse, error)
	// ListarActivos returns batches in state Activo.
	ListarActivos(ctx context.Context) ([]dto.LoteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.LoteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarLoteRequest) (*dto.LoteResponse, error)
	// Eliminar is refused while products reference the batch.
	Eliminar(ctx context.Context, id uuid.UUID) error
	// Ficha renders the batch sheet PDF.
	Ficha(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type loteService struct {
	repo       repository.LoteRepository
	operadores repository.OperadorRepository
	productos  repository.ProductoRepository
	dispatcher JobDispatcher
	cfg        LoteConfig
}

func NewLoteService(
	repo repository.LoteRepository,
	operadores repository.OperadorRepository,
	productos repository.ProductoRepository,
	dispatcher JobDispatcher,
	cfg LoteConfig,
) LoteService {
	return &loteService{
		repo:       repo,
		operadores: operadores,
		productos:  productos,
		dispatcher: dispatcher,
		cfg:        cfg,
	}
}

const msgLoteNoEncontrado = "lote no encontrado"

// TrazabilidadURL is the link encoded in a batch's QR label.
func (s *loteService) trazabilidadURL(id uuid.UUID) string {
	return s.cfg.PublicBaseURL + "/v1/lotes/" + id.String()
}

func (s *loteService) mapLote(l *model.Lote) dto.LoteResponse {
	return dto.LoteResponse{
		ID:                   l.ID.String(),
		Numero:               l.Numero,
		FechaFabricacion:     l.FechaFabricacion.Format(dto.DateLayout),
		FechaVencimiento:     l.FechaVencimiento.Format(dto.DateLayout),
		CantidadProducida:    l.CantidadProducida,
		EstatusCalidad:       string(l.EstatusCalidad),
		FechaRegistroSistema: l.FechaRegistroSistema,
		Observaciones:        l.Observaciones,
		EstadoLote:           string(l.EstadoLote),
		OperadorID:           l.OperadorID.String(),
		TrazabilidadURL:      s.trazabilidadURL(l.ID),
	}
}

func (s *loteService) mapLotes(list []model.Lote) []dto.LoteResponse {
	out := make([]dto.LoteResponse, 0, len(list))
	for i := range list {
		out = append(out, s.mapLote(&list[i]))
	}
	return out
}

func parseFecha(field, v string) (time.Time, error) {
	t, err := time.Parse(dto.DateLayout, v)
	if err != nil {
		return time.Time{}, invalid(field, field+" debe tener formato AAAA-MM-DD")
	}
	return t, nil
}

func parseCalidad(v string) (model.EstatusCalidad, error) {
	e, err := model.ParseEstatusCalidad(v)
	if err != nil {
		return "", invalid("estatus_calidad", "estatus_calidad debe ser Paso, Pendiente o Fallo")
	}
	return e, nil
}

func parseEstadoLote(v string) (model.EstadoLote, error) {
	e, err := model.ParseEstadoLote(v)
	if err != nil {
		return "", invalid("estado_lote", "estado_lote debe ser Vendido, Retirado o Activo")
	}
	return e, nil
}

func validarFechas(l *model.Lote) error {
	if l.FechaVencimiento.Before(l.FechaFabricacion) {
		return invalid("fecha_vencimiento", "la fecha de vencimiento no puede ser anterior a la de fabricación")
	}
	return nil
}

func (s *loteService) operadorExistente(ctx context.Context, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalid("operador_id", "operador_id inválido")
	}
	if _, err := s.operadores.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return uuid.Nil, invalid("operador_id", "el operador no existe")
		}
		return uuid.Nil, err
	}
	return id, nil
}

func (s *loteService) Crear(ctx context.Context, req dto.CrearLoteRequest) (*dto.LoteResponse, error) {
	l := &model.Lote{
		Numero:            req.Numero,
		CantidadProducida: req.CantidadProducida,
		Observaciones:     req.Observaciones,
		EstadoLote:        model.LoteActivo,
	}

	var err error
	if l.FechaFabricacion, err = parseFecha("fecha_fabricacion", req.FechaFabricacion); err != nil {
		return nil, err
	}
	if l.FechaVencimiento, err = parseFecha("fecha_vencimiento", req.FechaVencimiento); err != nil {
		return nil, err
	}
	if err := validarFechas(l); err != nil {
		return nil, err
	}
	if l.EstatusCalidad, err = parseCalidad(req.EstatusCalidad); err != nil {
		return nil, err
	}
	if req.EstadoLote != "" {
		if l.EstadoLote, err = parseEstadoLote(req.EstadoLote); err != nil {
			return nil, err
		}
	}
	if l.OperadorID, err = s.operadorExistente(ctx, req.OperadorID); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, describe(err, "", "", "el operador no existe")
	}

	s.enqueueEtiqueta(ctx, l)
	if l.EstatusCalidad == model.CalidadFallo {
		s.enqueueAlerta(ctx, l)
	}

	resp := s.mapLote(l)
	return &resp, nil
}

func (s *loteService) Listar(ctx context.Context, f dto.LoteFilter) ([]dto.LoteResponse, error) {
	var filtro repository.LoteFilter
	if f.OperadorID != "" {
		id, err := uuid.Parse(f.OperadorID)
		if err != nil {
			return nil, invalid("operador_id", "operador_id inválido")
		}
		filtro.OperadorID = &id
	}
	if f.Estado != "" {
		e, err := parseEstadoLote(f.Estado)
		if err != nil {
			return nil, err
		}
		filtro.Estado = &e
	}
	if f.Calidad != "" {
		c, err := parseCalidad(f.Calidad)
		if err != nil {
			return nil, err
		}
		filtro.Calidad = &c
	}

	list, err := s.repo.List(ctx, filtro)
	if err != nil {
		return nil, err
	}
	return s.mapLotes(list), nil
}

func (s *loteService) ListarActivos(ctx context.Context) ([]dto.LoteResponse, error) {
	list, err := s.repo.ListActivos(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapLotes(list), nil
}

func (s *loteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.LoteResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, describe(err, msgLoteNoEncontrado, "", "")
	}
	resp := s.mapLote(l)
	return &resp, nil
}

func (s *loteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarLoteRequest) (*dto.LoteResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, describe(err, msgLoteNoEncontrado, "", "")
	}
	calidadAnterior := l.EstatusCalidad

	if req.Numero != nil {
		l.Numero = *req.Numero
	}
	if req.FechaFabricacion != nil {
		if l.FechaFabricacion, err = parseFecha("fecha_fabricacion", *req.FechaFabricacion); err != nil {
			return nil, err
		}
	}
	if req.FechaVencimiento != nil {
		if l.FechaVencimiento, err = parseFecha("fecha_vencimiento", *req.FechaVencimiento); err != nil {
			return nil, err
		}
	}
	if err := validarFechas(l); err != nil {
		return nil, err
	}
	if req.CantidadProducida != nil {
		l.CantidadProducida = *req.CantidadProducida
	}
	if req.EstatusCalidad != nil {
		if l.EstatusCalidad, err = parseCalidad(*req.EstatusCalidad); err != nil {
			return nil, err
		}
	}
	if req.Observaciones != nil {
		l.Observaciones = req.Observaciones
	}
	if req.EstadoLote != nil {
		if l.EstadoLote, err = parseEstadoLote(*req.EstadoLote); err != nil {
			return nil, err
		}
	}
	if req.OperadorID != nil {
		if l.OperadorID, err = s.operadorExistente(ctx, *req.OperadorID); err != nil {
			return nil, err
		}
		l.Operador = nil
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, describe(err, "", "", "el operador no existe")
	}

	if l.EstatusCalidad == model.CalidadFallo && calidadAnterior != model.CalidadFallo {
		s.enqueueAlerta(ctx, l)
	}

	resp := s.mapLote(l)
	return &resp, nil
}

func (s *loteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return describe(s.repo.Delete(ctx, id),
		msgLoteNoEncontrado, "",
		"el lote tiene productos registrados y no puede eliminarse")
}

func (s *loteService) Ficha(ctx context.Context, id uuid.UUID) ([]byte, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, describe(err, msgLoteNoEncontrado, "", "")
	}
	productos, err := s.productos.List(ctx, &id)
	if err != nil {
		return nil, err
	}

	ficha := infra.FichaLote{
		Lote:      l,
		Productos: productos,
		QRText:    s.trazabilidadURL(l.ID),
	}
	if l.Operador != nil && l.Operador.Usuario != nil {
		ficha.Operador = l.Operador.Usuario.Nombre
	}
	// A missing QR does not prevent printing the sheet.
	if png, err := qr.Render(ficha.QRText, s.cfg.QR); err != nil {
		log.Error().Err(err).Str("lote_id", id.String()).Msg("ficha: qr render failed")
	} else {
		ficha.QRPNG = png
	}

	return infra.GenerateFichaLotePDF(ficha)
}

// Jobs are best effort: the batch is already stored when they are enqueued.

func (s *loteService) enqueueEtiqueta(ctx context.Context, l *model.Lote) {
	if s.dispatcher == nil {
		return
	}
	p := worker.EtiquetaJobPayload{LoteID: l.ID.String(), Numero: l.Numero, URL: s.trazabilidadURL(l.ID)}
	if err := s.dispatcher.EnqueueEtiquetaQR(ctx, p); err != nil {
		log.Error().Err(err).Str("lote_id", p.LoteID).Msg("lote: enqueue label failed")
	}
}

func (s *loteService) enqueueAlerta(ctx context.Context, l *model.Lote) {
	if s.dispatcher == nil || s.cfg.QualityAlertEmail == "" {
		return
	}
	obs := "-"
	if l.Observaciones != nil && *l.Observaciones != "" {
		obs = *l.Observaciones
	}
	p := worker.EmailJobPayload{
		ToEmail: s.cfg.QualityAlertEmail,
		Subject: fmt.Sprintf("Lote %d: control de calidad fallido", l.Numero),
		Body: fmt.Sprintf(
			"El lote %d (fabricado %s, vence %s) quedó con estatus de calidad Fallo.\nEstado: %s\nObservaciones: %s\nDetalle: %s\n",
			l.Numero,
			l.FechaFabricacion.Format(dto.DateLayout),
			l.FechaVencimiento.Format(dto.DateLayout),
			l.EstadoLote, obs, s.trazabilidadURL(l.ID),
		),
	}
	if err := s.dispatcher.EnqueueEmail(ctx, p); err != nil {
		log.Error().Err(err).Str("lote_id", l.ID.String()).Msg("lote: enqueue quality alert failed")
	}
}
