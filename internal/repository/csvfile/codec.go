package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/RamonCharlles/Gestao-componentes/internal/model"
)

const (
	colResponsible     = "Responsável"
	colBadge           = "Matrícula"
	colPartNumber      = "PN"
	colDescription     = "Descrição"
	colTag             = "TAG"
	colHourMeter       = "Horímetro"
	colFailure         = "Falha"
	colScope           = "Escopo"
	colImage           = "Imagem"
	colWithdrawalOrder = "OS_Retirada"
	colWithdrawalDate  = "Data_Retirada"
	colStatus          = "Status"
	colShipmentRef     = "RS"
	colShipmentNote    = "Nota/Passe"
	colShipmentDate    = "Data_Envio"
	colDeliveryDate    = "Data_Entrega"
	colCancelled       = "Cancelado"
	colCancelReason    = "Motivo_Cancelamento"
	colID              = "ID"
	colVersion         = "Versao"
)

const (
	tokenTrue  = "Sim"
	tokenFalse = "Não"
)

// Header is the column order written on every save. The first eighteen
// columns predate ID and Versao and keep their historical order.
var Header = []string{
	colResponsible, colBadge, colPartNumber, colDescription, colTag,
	colHourMeter, colFailure, colScope, colImage, colWithdrawalOrder,
	colWithdrawalDate, colStatus, colShipmentRef, colShipmentNote,
	colShipmentDate, colDeliveryDate, colCancelled, colCancelReason,
	colID, colVersion,
}

var requiredColumns = []string{
	colResponsible, colBadge, colPartNumber, colDescription, colTag,
	colFailure, colScope, colWithdrawalOrder, colWithdrawalDate, colStatus,
}

type row struct {
	cells []string
	index map[string]int
}

func (r row) get(col string) string {
	i, ok := r.index[col]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r row) has(col string) bool {
	_, ok := r.index[col]
	return ok
}

// Decode reads a full record set. Structural problems are reported as
// model.ErrStoreCorrupt and never coerced.
func Decode(src io.Reader) ([]model.Record, error) {
	records, _, err := decode(src)
	return records, err
}

// decode also reports how many rows had no ID and were given a fresh one.
func decode(src io.Reader) ([]model.Record, int, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, fmt.Errorf("%w: missing header row", model.ErrStoreCorrupt)
		}
		return nil, 0, classifyReadErr(err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, 0, fmt.Errorf("%w: missing required columns %s", model.ErrStoreCorrupt, strings.Join(missing, ", "))
	}

	records := make([]model.Record, 0)
	seen := make(map[uuid.UUID]struct{})
	minted := 0
	for line := 2; ; line++ {
		cells, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, classifyReadErr(err)
		}
		if blank(cells) {
			continue
		}

		rec, fresh, err := decodeRow(row{cells: cells, index: index})
		if err != nil {
			return nil, 0, fmt.Errorf("%w: line %d: %v", model.ErrStoreCorrupt, line, err)
		}
		if _, dup := seen[rec.ID]; dup {
			return nil, 0, fmt.Errorf("%w: line %d: duplicate id %s", model.ErrStoreCorrupt, line, rec.ID)
		}
		seen[rec.ID] = struct{}{}
		if fresh {
			minted++
		}

		records = append(records, rec)
	}

	return records, minted, nil
}

func classifyReadErr(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return fmt.Errorf("%w: %v", model.ErrStoreCorrupt, err)
	}
	return fmt.Errorf("%w: %v", model.ErrStoreRead, err)
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func decodeRow(r row) (rec model.Record, fresh bool, err error) {
	status, err := model.ParseStatus(r.get(colStatus))
	if err != nil {
		return model.Record{}, false, err
	}

	rec = model.Record{
		ResponsibleName:    r.get(colResponsible),
		BadgeID:            r.get(colBadge),
		PartNumber:         r.get(colPartNumber),
		Description:        r.get(colDescription),
		EquipmentTag:       r.get(colTag),
		FailureDescription: r.get(colFailure),
		ServiceScope:       r.get(colScope),
		ImagePath:          r.get(colImage),
		WithdrawalOrder:    r.get(colWithdrawalOrder),
		WithdrawalDate:     model.Date(r.get(colWithdrawalDate)),
		Status:             status,
		ShipmentReference:  r.get(colShipmentRef),
		ShipmentNote:       r.get(colShipmentNote),
		ShipmentDate:       model.Date(r.get(colShipmentDate)),
		DeliveryDate:       model.Date(r.get(colDeliveryDate)),
		CancellationReason: r.get(colCancelReason),
		Version:            1,
	}

	if raw := r.get(colHourMeter); raw != "" {
		rec.HourMeter, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return model.Record{}, false, fmt.Errorf("hour meter %q: %w", raw, err)
		}
		if math.IsNaN(rec.HourMeter) || math.IsInf(rec.HourMeter, 0) || rec.HourMeter < 0 {
			return model.Record{}, false, fmt.Errorf("hour meter %q must be a finite non-negative number", raw)
		}
	}

	if r.has(colCancelled) {
		rec.Cancelled, err = parseBool(r.get(colCancelled))
		if err != nil {
			return model.Record{}, false, err
		}
	} else {
		rec.Cancelled = status == model.StatusCancelled
	}

	if raw := r.get(colID); raw != "" {
		rec.ID, err = uuid.Parse(raw)
		if err != nil {
			return model.Record{}, false, fmt.Errorf("id %q: %w", raw, err)
		}
	} else {
		rec.ID, fresh = uuid.New(), true
	}

	if raw := r.get(colVersion); raw != "" {
		rec.Version, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || rec.Version < 1 {
			return model.Record{}, false, fmt.Errorf("version %q is not a positive integer", raw)
		}
	}

	return rec, fresh, nil
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "", strings.ToLower(tokenFalse), "nao", "false", "0":
		return false, nil
	case strings.ToLower(tokenTrue), "true", "1":
		return true, nil
	default:
		return false, fmt.Errorf("cancelled flag %q is not %s/%s", raw, tokenTrue, tokenFalse)
	}
}

func formatBool(b bool) string {
	if b {
		return tokenTrue
	}
	return tokenFalse
}

// Encode writes the header followed by one row per record.
func Encode(dst io.Writer, records []model.Record) error {
	w := csv.NewWriter(dst)

	if err := w.Write(Header); err != nil {
		return err
	}
	for _, rec := range records {
		if err := w.Write(EncodeRow(rec)); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// EncodeRow renders one record in Header order.
func EncodeRow(rec model.Record) []string {
	return []string{
		rec.ResponsibleName,
		rec.BadgeID,
		rec.PartNumber,
		rec.Description,
		rec.EquipmentTag,
		strconv.FormatFloat(rec.HourMeter, 'f', -1, 64),
		rec.FailureDescription,
		rec.ServiceScope,
		rec.ImagePath,
		rec.WithdrawalOrder,
		rec.WithdrawalDate.String(),
		rec.Status.Label(),
		rec.ShipmentReference,
		rec.ShipmentNote,
		rec.ShipmentDate.String(),
		rec.DeliveryDate.String(),
		formatBool(rec.Cancelled),
		rec.CancellationReason,
		rec.ID.String(),
		strconv.FormatInt(rec.Version, 10),
	}
}
