package service_test

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aead/cmac"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kgrady/boltcard-gateway/internal/invoice"
	"github.com/kgrady/boltcard-gateway/internal/models"
	. "github.com/kgrady/boltcard-gateway/internal/service"
	"github.com/kgrady/boltcard-gateway/internal/service/mocks"
)

const testNodeID = "03aabbccdd"

var (
	testPiccKey = []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	testCmacKey = []byte{16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31}
)

// forgeTap produces the encrypted blob and truncated tag a card holding the
// test keys would emit for this counter.
func forgeTap(t *testing.T, counter uint32) (piccData, mac []byte) {
	t.Helper()

	uid := [7]byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03}
	plain := make([]byte, 16)
	plain[0] = 0xC7
	copy(plain[1:8], uid[:])
	plain[8] = byte(counter)
	plain[9] = byte(counter >> 8)
	plain[10] = byte(counter >> 16)

	block, err := aes.NewCipher(testPiccKey)
	require.NoError(t, err)
	piccData = make([]byte, 16)
	cipher.NewCBCEncrypter(block, make([]byte, aes.BlockSize)).CryptBlocks(piccData, plain)

	cmacBlock, err := aes.NewCipher(testCmacKey)
	require.NoError(t, err)
	sv2 := append([]byte{0x3C, 0xC3, 0x00, 0x01, 0x00, 0x80}, uid[:]...)
	sv2 = append(sv2, plain[8:11]...)
	sessionKey, err := cmac.Sum(sv2, cmacBlock, cmacBlock.BlockSize())
	require.NoError(t, err)
	sessionBlock, err := aes.NewCipher(sessionKey)
	require.NoError(t, err)
	full, err := cmac.Sum(nil, sessionBlock, sessionBlock.BlockSize())
	require.NoError(t, err)

	mac = make([]byte, 8)
	for i := range mac {
		mac[i] = full[i*2+1]
	}
	return piccData, mac
}

// forgeInvoice builds a parseable mainnet invoice. Signature groups are
// zeros; parsing carries them opaquely.
func forgeInvoice(t *testing.T, hrp string) string {
	t.Helper()

	data := make([]byte, 7)
	ts := time.Now().Unix()
	for i := 6; i >= 0; i-- {
		data[i] = byte(ts & 31)
		ts >>= 5
	}

	var hash [32]byte
	hashGroups, err := bech32.ConvertBits(hash[:], 8, 5, true)
	require.NoError(t, err)
	data = append(data, 1, byte(len(hashGroups)>>5), byte(len(hashGroups)&31))
	data = append(data, hashGroups...)

	data = append(data, make([]byte, 104)...)

	raw, err := bech32.Encode(hrp, data)
	require.NoError(t, err)
	return raw
}

func testCard(lastKnownCounter uint32) *models.Card {
	return &models.Card{
		ID:               uuid.New(),
		Name:             "test card",
		UID:              []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01, 0x02, 0x03},
		PiccDataKey:      testPiccKey,
		CmacKey:          testCmacKey,
		LastKnownCounter: lastKnownCounter,
		IsActive:         true,
	}
}

type withdrawFixture struct {
	registry   *mocks.MockCardRegistry
	checker    *mocks.MockInvoiceChecker
	claims     *mocks.MockClaimer
	readiness  *mocks.MockReadinessWaiter
	rates      *mocks.MockRateProvider
	settlement *mocks.MockSettlementNotifier
	service    *WithdrawService
}

func newWithdrawFixture(t *testing.T) *withdrawFixture {
	f := &withdrawFixture{
		registry:   mocks.NewMockCardRegistry(t),
		checker:    mocks.NewMockInvoiceChecker(t),
		claims:     mocks.NewMockClaimer(t),
		readiness:  mocks.NewMockReadinessWaiter(t),
		rates:      mocks.NewMockRateProvider(t),
		settlement: mocks.NewMockSettlementNotifier(t),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.service = NewWithdrawService(testNodeID, f.registry, f.checker, f.claims, f.readiness, f.rates, f.settlement, logger)
	return f
}

func (f *withdrawFixture) request(t *testing.T, counter uint32) models.WithdrawRequest {
	t.Helper()
	piccData, mac := forgeTap(t, counter)
	return models.NewWithdrawRequest(testNodeID, piccData, mac, forgeInvoice(t, "lnbc10u"), time.Now())
}

func (f *withdrawFixture) expectNotify(req models.WithdrawRequest, errMessage string) {
	f.settlement.On("PostResult", mock.Anything, testNodeID, req.WithdrawHash, errMessage).Return(true)
}

func TestWithdrawService_CheckWithdraw(t *testing.T) {
	ctx := context.Background()

	t.Run("authorizes a fresh tap and advances the counter", func(t *testing.T) {
		f := newWithdrawFixture(t)
		card := testCard(5)
		req := f.request(t, 6)

		f.registry.On("Cards").Return([]*models.Card{card})
		f.checker.On("Check", ctx, mock.AnythingOfType("*invoice.Invoice")).Return(invoice.RejectNone, nil)
		f.readiness.On("WaitUntilReady", ctx).Return(nil)
		f.claims.On("TryClaim", ctx, req.WithdrawHash, models.ProcessForeground).Return(true, nil)
		f.registry.On("SaveCard", ctx, mock.MatchedBy(func(c *models.Card) bool {
			return c.ID == card.ID && c.LastKnownCounter == 6
		})).Return(nil)
		f.registry.On("RecordPayment", ctx, mock.MatchedBy(func(p *models.CardPayment) bool {
			return p.CardID == card.ID && p.AmountMsat == 1_000_000 && p.Status == models.PaymentStatusPending
		})).Return(nil)
		f.expectNotify(req, "")

		status, err := f.service.CheckWithdraw(ctx, req, models.ProcessForeground)

		require.NoError(t, err)
		require.NotNil(t, status)
		assert.Equal(t, DecisionSendPayment, status.Decision)
		assert.Equal(t, card.ID, status.Card.ID)
		assert.Equal(t, int64(1_000_000), status.AmountMsat)
		assert.NotEqual(t, uuid.Nil, status.PaymentID)
		require.NotNil(t, status.Invoice)
		assert.Equal(t, req.Invoice, status.Invoice.Raw)
	})

	t.Run("falls back to the store when the cache is cold", func(t *testing.T) {
		f := newWithdrawFixture(t)
		card := testCard(0)
		req := f.request(t, 1)

		f.registry.On("Cards").Return(nil)
		f.registry.On("ListCards", ctx).Return([]*models.Card{card}, nil)
		f.checker.On("Check", ctx, mock.Anything).Return(invoice.RejectNone, nil)
		f.readiness.On("WaitUntilReady", ctx).Return(nil)
		f.claims.On("TryClaim", ctx, req.WithdrawHash, models.ProcessForeground).Return(true, nil)
		f.registry.On("SaveCard", ctx, mock.Anything).Return(nil)
		f.registry.On("RecordPayment", ctx, mock.Anything).Return(nil)
		f.expectNotify(req, "")

		status, err := f.service.CheckWithdraw(ctx, req, models.ProcessForeground)

		require.NoError(t, err)
		assert.Equal(t, DecisionSendPayment, status.Decision)
	})

	t.Run("rejects a tap matching no card", func(t *testing.T) {
		f := newWithdrawFixture(t)
		req := f.request(t, 1)

		f.registry.On("Cards").Return(nil)
		f.registry.On("ListCards", ctx).Return(nil, nil)
		f.expectNotify(req, "unknown card")

		status, err := f.service.CheckWithdraw(ctx, req, models.ProcessForeground)

		assert.Nil(t, status)
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, ErrCodeUnknownCard, svcErr.Code)
	})

	t.Run("skips foreign and archived cards when matching", func(t *testing.T) {
		f := newWithdrawFixture(t)
		foreign := testCard(0)
		foreign.IsForeign = true
		archived := testCard(0)
		archived.IsArchived = true
		req := f.request(t, 1)

		f.registry.On("Cards").Return([]*models.Card{foreign, archived})
		f.registry.On("ListCards", mock.Anything).Return([]*models.Card{foreign, archived}, nil).Maybe()
		f.expectNotify(req, "unknown card")

		_, err := f.service.CheckWithdraw(ctx, req, models.ProcessForeground)

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, ErrCodeUnknownCard, svcErr.Code)
	})

	t.Run("rejects a replayed counter without touching the card", func(t *testing.T) {
		f := newWithdrawFixture(t)
		card := testCard(6)
		req := f.request(t, 6)

		f.registry.On("Cards").Return([]*models.Card{card})
		f.expectNotify(req, "replay detected")

		status, err := f.service.CheckWithdraw(ctx, req, models.ProcessForeground)

		assert.Nil(t, status)
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, ErrCodeReplayDetected, svcErr.Code)
		f.registry.AssertNotCalled(t, "SaveCard", mock.Anything, mock.Anything)
	})

	t.Run("rejects a frozen card but still advances the counter", func(t *testing.T) {
		f := newWithdrawFixture(t)
		card := testCard(5)
		card.IsActive = false
		req := f.request(t, 6)

		f.registry.On("Cards").Return([]*models.Card{card})
		f.registry.On("SaveCard", ctx, mock.MatchedBy(func(c *models.Card) bool {
			return c.LastKnownCounter == 6
		})).Return(nil)
		f.expectNotify(req, "frozen card")

		status, err := f.service.CheckWithdraw(ctx, req, models.ProcessForeground)

		assert.Nil(t, status)
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, ErrCodeFrozenCard, svcErr.Code)
	})

	t.Run("reports handled elsewhere when another process owns the claim", func(t *testing.T) {
		f := newWithdrawFixture(t)
		card := testCard(5)
		req := f.request(t, 6)

		f.registry.On("Cards").Return([]*models.Card{card})
		f.checker.On("Check", ctx, mock.Anything).Return(invoice.RejectNone, nil)
		f.readiness.On("WaitUntilReady", ctx).Return(nil)
		f.claims.On("TryClaim", ctx, req.WithdrawHash, models.ProcessBackground).Return(false, nil)
		f.expectNotify(req, "")

		status, err := f.service.CheckWithdraw(ctx, req, models.ProcessBackground)

		require.NoError(t, err)
		assert.Equal(t, DecisionHandledElsewhere, status.Decision)
		// The owning process performs the counter update.
		f.registry.AssertNotCalled(t, "SaveCard", mock.Anything, mock.Anything)
	})

	t.Run("rejects an unparseable invoice", func(t *testing.T) {
		f := newWithdrawFixture(t)
		card := testCard(5)
		piccData, mac := forgeTap(t, 6)
		req := models.NewWithdrawRequest(testNodeID, piccData, mac, "not an invoice", time.Now())

		f.registry.On("Cards").Return([]*models.Card{card})
		f.registry.On("SaveCard", ctx, mock.Anything).Return(nil)
		f.expectNotify(req, "bad invoice: parse error")

		_, err := f.service.CheckWithdraw(ctx, req, models.ProcessForeground)

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, ErrCodeBadInvoice, svcErr.Code)
	})

	t.Run("rejects an amountless invoice", func(t *testing.T) {
		f := newWithdrawFixture(t)
		card := testCard(5)
		piccData, mac := forgeTap(t, 6)
		req := models.NewWithdrawRequest(testNodeID, piccData, mac, forgeInvoice(t, "lnbc"), time.Now())

		f.registry.On("Cards").Return([]*models.Card{card})
		f.registry.On("SaveCard", ctx, mock.Anything).Return(nil)
		f.expectNotify(req, "bad invoice: missing amount")

		_, err := f.service.CheckWithdraw(ctx, req, models.ProcessForeground)

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, ErrCodeBadInvoice, svcErr.Code)
	})

	t.Run("maps semantic rejections to their codes", func(t *testing.T) {
		cases := []struct {
			name     string
			reason   invoice.RejectReason
			wantCode string
			wantMsg  string
		}{
			{"already paid", invoice.RejectAlreadyPaid, ErrCodeAlreadyPaidInvoice, "already paid invoice"},
			{"pending", invoice.RejectPending, ErrCodePaymentPending, "payment pending"},
			{"expired", invoice.RejectExpired, ErrCodeBadInvoice, "bad invoice: expired"},
			{"chain mismatch", invoice.RejectChainMismatch, ErrCodeBadInvoice, "bad invoice: chain mismatch"},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				f := newWithdrawFixture(t)
				card := testCard(5)
				req := f.request(t, 6)

				f.registry.On("Cards").Return([]*models.Card{card})
				f.registry.On("SaveCard", ctx, mock.Anything).Return(nil)
				f.checker.On("Check", ctx, mock.Anything).Return(tc.reason, nil)
				f.expectNotify(req, tc.wantMsg)

				_, err := f.service.CheckWithdraw(ctx, req, models.ProcessForeground)

				var svcErr *ServiceError
				require.ErrorAs(t, err, &svcErr)
				assert.Equal(t, tc.wantCode, svcErr.Code)
			})
		}
	})

	t.Run("fails internally when readiness never arrives", func(t *testing.T) {
		f := newWithdrawFixture(t)
		card := testCard(5)
		req := f.request(t, 6)

		f.registry.On("Cards").Return([]*models.Card{card})
		f.registry.On("SaveCard", ctx, mock.Anything).Return(nil)
		f.checker.On("Check", ctx, mock.Anything).Return(invoice.RejectNone, nil)
		f.readiness.On("WaitUntilReady", ctx).Return(context.DeadlineExceeded)
		f.expectNotify(req, "internal error")

		_, err := f.service.CheckWithdraw(ctx, req, models.ProcessForeground)

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, ErrCodeInternalError, svcErr.Code)
	})

	t.Run("fails internally when the claim store errors", func(t *testing.T) {
		f := newWithdrawFixture(t)
		card := testCard(5)
		req := f.request(t, 6)

		f.registry.On("Cards").Return([]*models.Card{card})
		f.registry.On("SaveCard", ctx, mock.Anything).Return(nil)
		f.checker.On("Check", ctx, mock.Anything).Return(invoice.RejectNone, nil)
		f.readiness.On("WaitUntilReady", ctx).Return(nil)
		f.claims.On("TryClaim", ctx, req.WithdrawHash, models.ProcessForeground).Return(false, assert.AnError)
		f.expectNotify(req, "internal error")

		_, err := f.service.CheckWithdraw(ctx, req, models.ProcessForeground)

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, ErrCodeInternalError, svcErr.Code)
	})

	t.Run("still authorizes when recording the payment fails", func(t *testing.T) {
		f := newWithdrawFixture(t)
		card := testCard(5)
		req := f.request(t, 6)

		f.registry.On("Cards").Return([]*models.Card{card})
		f.registry.On("SaveCard", ctx, mock.Anything).Return(nil)
		f.checker.On("Check", ctx, mock.Anything).Return(invoice.RejectNone, nil)
		f.readiness.On("WaitUntilReady", ctx).Return(nil)
		f.claims.On("TryClaim", ctx, req.WithdrawHash, models.ProcessForeground).Return(true, nil)
		f.registry.On("RecordPayment", ctx, mock.Anything).Return(assert.AnError)
		f.expectNotify(req, "")

		status, err := f.service.CheckWithdraw(ctx, req, models.ProcessForeground)

		require.NoError(t, err)
		assert.Equal(t, DecisionSendPayment, status.Decision)
	})
}

func TestWithdrawService_ResolvePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("marks a settled payment", func(t *testing.T) {
		f := newWithdrawFixture(t)
		paymentID := uuid.New()

		f.registry.On("UpdatePaymentStatus", ctx, paymentID, models.PaymentStatusSettled).Return(nil)

		require.NoError(t, f.service.ResolvePayment(ctx, paymentID, true))
	})

	t.Run("marks a failed payment", func(t *testing.T) {
		f := newWithdrawFixture(t)
		paymentID := uuid.New()

		f.registry.On("UpdatePaymentStatus", ctx, paymentID, models.PaymentStatusFailed).Return(nil)

		require.NoError(t, f.service.ResolvePayment(ctx, paymentID, false))
	})

	t.Run("surfaces a store failure as internal", func(t *testing.T) {
		f := newWithdrawFixture(t)
		paymentID := uuid.New()

		f.registry.On("UpdatePaymentStatus", ctx, paymentID, models.PaymentStatusSettled).Return(assert.AnError)

		err := f.service.ResolvePayment(ctx, paymentID, true)

		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, ErrCodeInternalError, svcErr.Code)
	})
}
