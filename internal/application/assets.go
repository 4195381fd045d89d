package application

import (
	"context"
	"encoding/csv"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"asset-console/internal/domain"
	"asset-console/internal/ports"
)

// assetStorageKey is the snapshot key the asset store persists under.
const assetStorageKey = "asset-storage"

// csvHeader is the fixed export column order. It is a compatibility
// contract: import assumes the same order and discards the header line.
var csvHeader = []string{
	"ID", "Name", "Category", "Serial Number", "RFID Tag", "Status",
	"Location", "Assigned To", "Purchase Date", "Purchase Price",
	"Current Value", "Vendor",
}

type assetSnapshot struct {
	Assets     []domain.Asset         `json:"assets"`
	Categories []domain.AssetCategory `json:"categories"`
}

// AssetInput carries the caller-settable fields of an asset. ID and the
// audit timestamps are store-managed.
type AssetInput struct {
	Name          string             `json:"name"`
	Category      string             `json:"category"`
	SerialNumber  string             `json:"serialNumber"`
	RFIDTag       string             `json:"rfidTag"`
	Status        domain.AssetStatus `json:"status"`
	Location      string             `json:"location"`
	AssignedTo    string             `json:"assignedTo"`
	PurchaseDate  string             `json:"purchaseDate"`
	PurchasePrice float64            `json:"purchasePrice"`
	CurrentValue  float64            `json:"currentValue"`
	Vendor        string             `json:"vendor"`
	Warranty      string             `json:"warranty"`
	Notes         string             `json:"notes"`
}

// AssetPatch is a partial update; nil fields keep their prior value.
type AssetPatch struct {
	Name          *string             `json:"name"`
	Category      *string             `json:"category"`
	SerialNumber  *string             `json:"serialNumber"`
	RFIDTag       *string             `json:"rfidTag"`
	Status        *domain.AssetStatus `json:"status"`
	Location      *string             `json:"location"`
	AssignedTo    *string             `json:"assignedTo"`
	PurchaseDate  *string             `json:"purchaseDate"`
	PurchasePrice *float64            `json:"purchasePrice"`
	CurrentValue  *float64            `json:"currentValue"`
	Vendor        *string             `json:"vendor"`
	Warranty      *string             `json:"warranty"`
	Notes         *string             `json:"notes"`
}

// AssetService owns the asset collection and the category catalog. All
// mutations funnel through it and every mutation persists the full
// collection snapshot.
type AssetService struct {
	mu         sync.Mutex
	assets     []domain.Asset
	categories []domain.AssetCategory

	store  ports.SnapshotStore
	logger ports.Logger

	allowDuplicateTags bool
	now                func() time.Time
	newID              func() string
}

type AssetOption func(*AssetService)

// WithAssetClock overrides the timestamp source.
func WithAssetClock(now func() time.Time) AssetOption {
	return func(s *AssetService) { s.now = now }
}

// WithDuplicateTags disables the serial-number/RFID-tag uniqueness check,
// restoring the lax legacy behavior for migration parity.
func WithDuplicateTags() AssetOption {
	return func(s *AssetService) { s.allowDuplicateTags = true }
}

func NewAssetService(store ports.SnapshotStore, logger ports.Logger, opts ...AssetOption) *AssetService {
	s := &AssetService{
		categories: domain.DefaultCategories(),
		store:      store,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load restores the persisted snapshot. A missing snapshot leaves the seeded
// defaults in place.
func (s *AssetService) Load(ctx context.Context) error {
	var snap assetSnapshot
	err := s.store.Load(ctx, assetStorageKey, &snap)
	if err == domain.ErrNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = snap.Assets
	if len(snap.Categories) > 0 {
		s.categories = snap.Categories
	}
	return nil
}

func (s *AssetService) persist(ctx context.Context) error {
	snap := assetSnapshot{Assets: s.assets, Categories: s.categories}
	if err := s.store.Save(ctx, assetStorageKey, snap); err != nil {
		s.logger.Error(ctx, "persist asset snapshot failed", "error", err)
		return err
	}
	return nil
}

func (s *AssetService) checkUnique(serialNumber, rfidTag, excludeID string) error {
	if s.allowDuplicateTags {
		return nil
	}
	for _, a := range s.assets {
		if a.ID == excludeID {
			continue
		}
		if serialNumber != "" && a.SerialNumber == serialNumber {
			return domain.ErrConflict
		}
		if rfidTag != "" && a.RFIDTag == rfidTag {
			return domain.ErrConflict
		}
	}
	return nil
}

// AddAsset creates a new asset from input, generating its id and stamping
// both audit timestamps.
func (s *AssetService) AddAsset(ctx context.Context, input AssetInput) (domain.Asset, error) {
	if input.Name == "" {
		return domain.Asset{}, domain.ErrInvalidInput
	}
	if input.Status == "" {
		input.Status = domain.StatusAvailable
	}
	if !domain.ValidStatus(input.Status) {
		return domain.Asset{}, domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkUnique(input.SerialNumber, input.RFIDTag, ""); err != nil {
		return domain.Asset{}, err
	}
	now := s.now()
	asset := domain.Asset{
		ID:            s.newID(),
		Name:          input.Name,
		Category:      input.Category,
		SerialNumber:  input.SerialNumber,
		RFIDTag:       input.RFIDTag,
		Status:        input.Status,
		Location:      input.Location,
		AssignedTo:    input.AssignedTo,
		PurchaseDate:  input.PurchaseDate,
		PurchasePrice: input.PurchasePrice,
		CurrentValue:  input.CurrentValue,
		Vendor:        input.Vendor,
		Warranty:      input.Warranty,
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.assets = append(s.assets, asset)
	if err := s.persist(ctx); err != nil {
		return domain.Asset{}, err
	}
	s.logger.Info(ctx, "asset added", "asset_id", asset.ID, "name", asset.Name)
	return asset, nil
}

// UpdateAsset merges patch over the asset with the given id and refreshes
// its updatedAt. An empty patch still refreshes updatedAt.
func (s *AssetService) UpdateAsset(ctx context.Context, id string, patch AssetPatch) (domain.Asset, error) {
	if patch.Status != nil && !domain.ValidStatus(*patch.Status) {
		return domain.Asset{}, domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Asset{}, domain.ErrNotFound
	}
	a := s.assets[idx]
	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.Category != nil {
		a.Category = *patch.Category
	}
	if patch.SerialNumber != nil {
		a.SerialNumber = *patch.SerialNumber
	}
	if patch.RFIDTag != nil {
		a.RFIDTag = *patch.RFIDTag
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	if patch.Location != nil {
		a.Location = *patch.Location
	}
	if patch.AssignedTo != nil {
		a.AssignedTo = *patch.AssignedTo
	}
	if patch.PurchaseDate != nil {
		a.PurchaseDate = *patch.PurchaseDate
	}
	if patch.PurchasePrice != nil {
		a.PurchasePrice = *patch.PurchasePrice
	}
	if patch.CurrentValue != nil {
		a.CurrentValue = *patch.CurrentValue
	}
	if patch.Vendor != nil {
		a.Vendor = *patch.Vendor
	}
	if patch.Warranty != nil {
		a.Warranty = *patch.Warranty
	}
	if patch.Notes != nil {
		a.Notes = *patch.Notes
	}
	if patch.SerialNumber != nil || patch.RFIDTag != nil {
		if err := s.checkUnique(a.SerialNumber, a.RFIDTag, a.ID); err != nil {
			return domain.Asset{}, err
		}
	}
	a.UpdatedAt = s.now()
	s.assets[idx] = a
	if err := s.persist(ctx); err != nil {
		return domain.Asset{}, err
	}
	return a, nil
}

// DeleteAsset removes the asset with the given id. There is no cascade:
// other records referencing the id keep doing so.
func (s *AssetService) DeleteAsset(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.ErrNotFound
	}
	s.assets = append(s.assets[:idx], s.assets[idx+1:]...)
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.logger.Info(ctx, "asset deleted", "asset_id", id)
	return nil
}

// ScanRFID returns the first asset in insertion order whose tag matches and
// stamps its lastScanned time. With duplicate tags allowed the tie-break is
// deliberately "first match".
func (s *AssetService) ScanRFID(ctx context.Context, tag string) (domain.Asset, error) {
	if tag == "" {
		return domain.Asset{}, domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.assets {
		if a.RFIDTag == tag {
			scanned := s.now()
			a.LastScanned = &scanned
			s.assets[i] = a
			if err := s.persist(ctx); err != nil {
				return domain.Asset{}, err
			}
			return a, nil
		}
	}
	return domain.Asset{}, domain.ErrNotFound
}

func (s *AssetService) indexOf(id string) int {
	for i, a := range s.assets {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// Assets returns a copy of the collection in insertion order.
func (s *AssetService) Assets() []domain.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

// AssetByID returns the asset with the given id.
func (s *AssetService) AssetByID(id string) (domain.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Asset{}, domain.ErrNotFound
	}
	return s.assets[idx], nil
}

// AssetsByCategory filters by category name, preserving insertion order.
func (s *AssetService) AssetsByCategory(category string) []domain.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Asset, 0)
	for _, a := range s.assets {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// AssetsByStatus filters by lifecycle status, preserving insertion order.
func (s *AssetService) AssetsByStatus(status domain.AssetStatus) []domain.Asset {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Asset, 0)
	for _, a := range s.assets {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out
}

// Categories returns the category catalog.
func (s *AssetService) Categories() []domain.AssetCategory {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AssetCategory, len(s.categories))
	copy(out, s.categories)
	return out
}

// ExportCSV serializes the collection in the fixed column order. Warranty,
// notes and the audit timestamps are not part of the format.
func (s *AssetService) ExportCSV() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	w := csv.NewWriter(&b)
	if err := w.Write(csvHeader); err != nil {
		return "", err
	}
	for _, a := range s.assets {
		row := []string{
			a.ID,
			a.Name,
			a.Category,
			a.SerialNumber,
			a.RFIDTag,
			string(a.Status),
			a.Location,
			a.AssignedTo,
			a.PurchaseDate,
			strconv.FormatFloat(a.PurchasePrice, 'f', -1, 64),
			strconv.FormatFloat(a.CurrentValue, 'f', -1, 64),
			a.Vendor,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ImportCSV appends assets parsed from data. The first line is discarded as
// a header without validation, rows shorter than the column set are skipped,
// and imported records always get fresh audit timestamps. Returns the number
// of assets imported.
func (s *AssetService) ImportCSV(ctx context.Context, data string) (int, error) {
	r := csv.NewReader(strings.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return 0, domain.ErrInvalidInput
	}
	if len(records) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	imported := 0
	for _, rec := range records[1:] {
		if len(rec) < len(csvHeader) {
			continue
		}
		now := s.now()
		id := rec[0]
		if id == "" {
			id = s.newID()
		}
		status := domain.AssetStatus(rec[5])
		if status == "" {
			status = domain.StatusAvailable
		}
		purchasePrice, _ := strconv.ParseFloat(rec[9], 64)
		currentValue, _ := strconv.ParseFloat(rec[10], 64)
		s.assets = append(s.assets, domain.Asset{
			ID:            id,
			Name:          rec[1],
			Category:      rec[2],
			SerialNumber:  rec[3],
			RFIDTag:       rec[4],
			Status:        status,
			Location:      rec[6],
			AssignedTo:    rec[7],
			PurchaseDate:  rec[8],
			PurchasePrice: purchasePrice,
			CurrentValue:  currentValue,
			Vendor:        rec[11],
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		imported++
	}
	if imported > 0 {
		if err := s.persist(ctx); err != nil {
			return 0, err
		}
	}
	s.logger.Info(ctx, "assets imported", "count", imported)
	return imported, nil
}
