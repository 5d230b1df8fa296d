package sharing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"stocknest/models"
)

// Outcomes callers branch on. Conflict is distinct from validation so the
// surface can render "already shared" instead of a generic bad request, and
// authorization is distinct from not-found.
var (
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrSelfShare         = errors.New("cannot share with yourself")
	ErrEmptyFavorites    = errors.New("favorites list is empty, nothing to share")
	ErrAlreadyShared     = errors.New("already shared with this recipient")
	ErrShareNotFound     = errors.New("share not found")
	ErrNotSharer         = errors.New("not authorized to revoke this share")
)

// Ledger owns the share lifecycle: create, list, revoke. At most one active
// share may exist per (sharer, recipient) pair; the partial unique index on
// the shares table is the authority for that rule, the in-code existence check
// only produces a deterministic error message ahead of the constraint.
type Ledger struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

func NewLedger(db *gorm.DB, logger *zap.SugaredLogger) *Ledger {
	return &Ledger{db: db, logger: logger}
}

// UserInfo is the display subset of a user attached to share listings.
type UserInfo struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// IncomingShare is what a recipient sees: who shared, and the snapshot taken
// at share time — not the sharer's current favorites.
type IncomingShare struct {
	ShareID       uuid.UUID `json:"share_id"`
	Sharer        UserInfo  `json:"sharer"`
	SharedSymbols []string  `json:"shared_symbols"`
	SharedAt      time.Time `json:"shared_at"`
}

// OutgoingShare is the sharer's management view: the recipient and how many
// symbols went out, never the symbols themselves.
type OutgoingShare struct {
	ShareID     uuid.UUID          `json:"share_id"`
	Recipient   UserInfo           `json:"recipient"`
	SymbolCount int                `json:"symbol_count"`
	Status      models.ShareStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Create snapshots the sharer's current favorites into a new active share for
// the recipient identified by email. Preconditions, first failure wins:
// recipient must exist, must not be the sharer, favorites must be non-empty,
// and no active share for the pair may exist.
func (l *Ledger) Create(ctx context.Context, sharerID uint, recipientEmail string) (*models.Share, error) {
	db := l.db.WithContext(ctx)
	email := strings.ToLower(strings.TrimSpace(recipientEmail))

	recipient, err := models.GetUserByEmail(db, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}

	if recipient.ID == sharerID {
		return nil, ErrSelfShare
	}

	symbols, err := models.ListFavoriteSymbols(db, sharerID)
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return nil, ErrEmptyFavorites
	}

	var active int64
	err = db.Model(&models.Share{}).
		Where("sharer_id = ? AND recipient_id = ? AND status = ?", sharerID, recipient.ID, models.ShareActive).
		Count(&active).Error
	if err != nil {
		return nil, err
	}
	if active > 0 {
		return nil, ErrAlreadyShared
	}

	share := &models.Share{
		UUID:        uuid.New(),
		SharerID:    sharerID,
		RecipientID: recipient.ID,
		// Copied, not referenced: later favorites changes must not reach
		// into the snapshot.
		SharedSymbols: append([]string(nil), symbols...),
		Status:        models.ShareActive,
	}
	if err := db.Create(share).Error; err != nil {
		if models.IsDuplicate(err) {
			// Lost a race with a concurrent share for the same pair.
			return nil, ErrAlreadyShared
		}
		l.logger.Errorw("creating share", "sharer", sharerID, "recipient", recipient.ID, "error", err)
		return nil, err
	}

	return share, nil
}

// Revoke flips an active share to revoked. Only the original sharer may
// revoke. Revoked rows are kept but never looked up here, so revoking an
// already-revoked or unknown id reports not-found.
func (l *Ledger) Revoke(ctx context.Context, requesterID uint, shareID string) error {
	id, err := uuid.Parse(shareID)
	if err != nil {
		return ErrShareNotFound
	}

	db := l.db.WithContext(ctx)

	var share models.Share
	err = db.Where("uuid = ? AND status = ?", id, models.ShareActive).First(&share).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShareNotFound
		}
		return err
	}

	if share.SharerID != requesterID {
		return ErrNotSharer
	}

	return db.Model(&share).Update("status", models.ShareRevoked).Error
}

// SharedWithMe lists the caller's active incoming shares, newest first.
func (l *Ledger) SharedWithMe(ctx context.Context, userID uint) ([]IncomingShare, error) {
	var shares []models.Share
	err := l.db.WithContext(ctx).
		Preload("Sharer").
		Where("recipient_id = ? AND status = ?", userID, models.ShareActive).
		Order("created_at desc").
		Find(&shares).Error
	if err != nil {
		return nil, err
	}

	incoming := make([]IncomingShare, 0, len(shares))
	for _, share := range shares {
		incoming = append(incoming, IncomingShare{
			ShareID:       share.UUID,
			Sharer:        userInfo(share.Sharer),
			SharedSymbols: share.SharedSymbols,
			SharedAt:      share.CreatedAt,
		})
	}

	return incoming, nil
}

// MyShares lists the caller's active outgoing shares, newest first.
func (l *Ledger) MyShares(ctx context.Context, userID uint) ([]OutgoingShare, error) {
	var shares []models.Share
	err := l.db.WithContext(ctx).
		Preload("Recipient").
		Where("sharer_id = ? AND status = ?", userID, models.ShareActive).
		Order("created_at desc").
		Find(&shares).Error
	if err != nil {
		return nil, err
	}

	outgoing := make([]OutgoingShare, 0, len(shares))
	for _, share := range shares {
		outgoing = append(outgoing, OutgoingShare{
			ShareID:     share.UUID,
			Recipient:   userInfo(share.Recipient),
			SymbolCount: len(share.SharedSymbols),
			Status:      share.Status,
			CreatedAt:   share.CreatedAt,
		})
	}

	return outgoing, nil
}

func userInfo(u models.User) UserInfo {
	return UserInfo{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
	}
}
