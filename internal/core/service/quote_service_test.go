package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finquote/quoting-portal/internal/core/domain"
	"github.com/finquote/quoting-portal/internal/core/ports"
)

var (
	clientA = domain.Identity{UserID: "client-a", Email: "a@example.com", Name: "A", Role: domain.RoleClient}
	clientB = domain.Identity{UserID: "client-b", Email: "b@example.com", Name: "B", Role: domain.RoleClient}
	admin   = domain.Identity{UserID: "admin", Email: "admin@example.com", Name: "Admin", Role: domain.RoleAdmin}
)

type quoteFixture struct {
	svc      *QuoteService
	quotes   *stubQuoteRepo
	products *stubProductRepo
	idem     *stubIdempotency
	product  *domain.Product
}

func newQuoteFixture(t *testing.T, withIdempotency bool) *quoteFixture {
	t.Helper()
	f := &quoteFixture{
		quotes:   newStubQuoteRepo(),
		products: newStubProductRepo(),
	}
	p, err := f.products.Create(context.Background(), &domain.Product{Name: "Business Loan", Price: *price("50000")})
	require.NoError(t, err)
	f.product = p

	var idem ports.IdempotencyStore
	if withIdempotency {
		f.idem = newStubIdempotency()
		idem = f.idem
	}
	f.svc = NewQuoteService(f.quotes, f.products, idem, discardLogger)
	return f
}

func TestQuoteService_Submit_CreatesPending(t *testing.T) {
	f := newQuoteFixture(t, false)

	res, err := f.svc.Submit(context.Background(), clientA, ports.SubmitQuoteInput{
		ProductID: f.product.ID, Quantity: 2, Message: "  need it soon ",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.ID)
	assert.False(t, res.AlreadyExisted)

	stored := f.quotes.byID[res.ID]
	require.NotNil(t, stored)
	assert.Equal(t, domain.QuotePending, stored.Status)
	assert.Equal(t, "client-a", stored.ClientID, "client id comes from the identity")
	assert.Equal(t, 2, stored.Quantity)
	assert.Equal(t, "need it soon", stored.Message)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestQuoteService_Submit_Validation(t *testing.T) {
	f := newQuoteFixture(t, false)

	cases := []ports.SubmitQuoteInput{
		{ProductID: "", Quantity: 1},
		{ProductID: f.product.ID, Quantity: 0},
		{ProductID: f.product.ID, Quantity: -3},
		{ProductID: f.product.ID, Quantity: domain.MaxQuantity + 1},
	}
	for _, in := range cases {
		_, err := f.svc.Submit(context.Background(), clientA, in)
		assert.ErrorIs(t, err, domain.ErrValidation, "input %+v", in)
	}
	assert.Empty(t, f.quotes.byID)
}

func TestQuoteService_Submit_MaxQuantityAccepted(t *testing.T) {
	f := newQuoteFixture(t, false)

	res, err := f.svc.Submit(context.Background(), clientA, ports.SubmitQuoteInput{
		ProductID: f.product.ID, Quantity: domain.MaxQuantity,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxQuantity, f.quotes.byID[res.ID].Quantity)
}

func TestQuoteService_Submit_UnknownProduct(t *testing.T) {
	f := newQuoteFixture(t, false)

	_, err := f.svc.Submit(context.Background(), clientA, ports.SubmitQuoteInput{ProductID: "nope", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.quotes.byID)
}

func TestQuoteService_Submit_RepoError(t *testing.T) {
	f := newQuoteFixture(t, false)
	f.quotes.createErr = errDBDown

	_, err := f.svc.Submit(context.Background(), clientA, ports.SubmitQuoteInput{ProductID: f.product.ID, Quantity: 1})
	assert.ErrorIs(t, err, errDBDown)
}

func TestQuoteService_Submit_IdempotentReplay(t *testing.T) {
	f := newQuoteFixture(t, true)
	in := ports.SubmitQuoteInput{ProductID: f.product.ID, Quantity: 1, IdempotencyKey: "k-1"}

	first, err := f.svc.Submit(context.Background(), clientA, in)
	require.NoError(t, err)
	second, err := f.svc.Submit(context.Background(), clientA, in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.AlreadyExisted)
	assert.Len(t, f.quotes.byID, 1)

	// Keys are scoped per client.
	other, err := f.svc.Submit(context.Background(), clientB, in)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
	assert.Len(t, f.quotes.byID, 2)
}

func TestQuoteService_Submit_IdempotencyStoreFailureDoesNotBlock(t *testing.T) {
	f := newQuoteFixture(t, true)
	f.idem.reserveErr = errDBDown
	f.idem.completeErr = errDBDown

	res, err := f.svc.Submit(context.Background(), clientA, ports.SubmitQuoteInput{
		ProductID: f.product.ID, Quantity: 1, IdempotencyKey: "k-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
}

func TestQuoteService_Submit_ConcurrentSameKeyCreatesOne(t *testing.T) {
	f := newQuoteFixture(t, true)
	in := ports.SubmitQuoteInput{ProductID: f.product.ID, Quantity: 1, IdempotencyKey: "k-race"}

	// A reservation held by an in-flight request.
	f.idem.keys["client-a:k-race"] = stubPending

	_, err := f.svc.Submit(context.Background(), clientA, in)
	require.ErrorIs(t, err, domain.ErrRequestInProgress)
	assert.Empty(t, f.quotes.byID)

	const workers = 8
	delete(f.idem.keys, "client-a:k-race")
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[string]bool)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.svc.Submit(context.Background(), clientA, in)
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrRequestInProgress)
				return
			}
			mu.Lock()
			ids[res.ID] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, f.quotes.byID, 1)
	assert.Len(t, ids, 1)
}

func TestQuoteService_Submit_FailedCreateReleasesKey(t *testing.T) {
	f := newQuoteFixture(t, true)
	in := ports.SubmitQuoteInput{ProductID: "nope", Quantity: 1, IdempotencyKey: "k-2"}

	_, err := f.svc.Submit(context.Background(), clientA, in)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, []string{"client-a:k-2"}, f.idem.released)

	// The key is free again for a corrected retry.
	in.ProductID = f.product.ID
	res, err := f.svc.Submit(context.Background(), clientA, in)
	require.NoError(t, err)
	assert.False(t, res.AlreadyExisted)
}

func TestQuoteService_Submit_KeyIgnoredWithoutStore(t *testing.T) {
	f := newQuoteFixture(t, false)
	in := ports.SubmitQuoteInput{ProductID: f.product.ID, Quantity: 1, IdempotencyKey: "k-1"}

	_, err := f.svc.Submit(context.Background(), clientA, in)
	require.NoError(t, err)
	_, err = f.svc.Submit(context.Background(), clientA, in)
	require.NoError(t, err)
	assert.Len(t, f.quotes.byID, 2)
}

func TestQuoteService_List_Scoping(t *testing.T) {
	f := newQuoteFixture(t, false)
	for _, who := range []domain.Identity{clientA, clientA, clientB} {
		_, err := f.svc.Submit(context.Background(), who, ports.SubmitQuoteInput{ProductID: f.product.ID, Quantity: 1})
		require.NoError(t, err)
	}

	mine, err := f.svc.List(context.Background(), clientA)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	for _, v := range mine {
		assert.Equal(t, "client-a", v.ClientID)
	}
	require.NotNil(t, f.quotes.lastListFilter)
	assert.Equal(t, "client-a", *f.quotes.lastListFilter)

	all, err := f.svc.List(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "", *f.quotes.lastListFilter)
}

func TestQuoteService_List_UnknownRole(t *testing.T) {
	f := newQuoteFixture(t, false)

	_, err := f.svc.List(context.Background(), domain.Identity{UserID: "x", Role: "auditor"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, f.quotes.lastListFilter)
}

func TestQuoteService_UpdateStatus(t *testing.T) {
	f := newQuoteFixture(t, false)
	res, err := f.svc.Submit(context.Background(), clientA, ports.SubmitQuoteInput{ProductID: f.product.ID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdateStatus(context.Background(), res.ID, "approved"))
	assert.Equal(t, domain.QuoteApproved, f.quotes.byID[res.ID].Status)

	// No transition graph: approved may go back to pending, and repeating a status is fine.
	require.NoError(t, f.svc.UpdateStatus(context.Background(), res.ID, "pending"))
	require.NoError(t, f.svc.UpdateStatus(context.Background(), res.ID, "pending"))
	assert.Equal(t, domain.QuotePending, f.quotes.byID[res.ID].Status)
}

func TestQuoteService_UpdateStatus_Invalid(t *testing.T) {
	f := newQuoteFixture(t, false)
	res, _ := f.svc.Submit(context.Background(), clientA, ports.SubmitQuoteInput{ProductID: f.product.ID, Quantity: 1})

	for _, status := range []string{"", "cancelled", "APPROVED"} {
		err := f.svc.UpdateStatus(context.Background(), res.ID, status)
		assert.ErrorIs(t, err, domain.ErrValidation, "status %q", status)
	}
	assert.Equal(t, domain.QuotePending, f.quotes.byID[res.ID].Status)
}

func TestQuoteService_UpdateStatus_NotFound(t *testing.T) {
	f := newQuoteFixture(t, false)

	assert.ErrorIs(t, f.svc.UpdateStatus(context.Background(), "missing", "approved"), domain.ErrQuoteNotFound)
	assert.ErrorIs(t, f.svc.UpdateStatus(context.Background(), "", "approved"), domain.ErrQuoteNotFound)
}
