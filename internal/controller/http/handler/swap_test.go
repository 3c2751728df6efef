package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/Freeeeeet/slot_swapper/internal/controller/http/router"
	"github.com/Freeeeeet/slot_swapper/internal/model"
)

var _ = Describe("SwapHandler", func() {
	var (
		r        *gin.Engine
		exchange *mockExchangeService
		db       *mockPinger
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		exchange = &mockExchangeService{}
		db = &mockPinger{}
		r = router.New(router.Deps{
			Slots:    &mockSlotService{},
			Exchange: exchange,
			DB:       db,
			Tokens:   stubTokens{},
			Logger:   zap.NewNop(),
		})
	})

	Describe("Request", func() {
		It("returns 201 with the pending proposal", func() {
			exchange.proposeFn = func(_ context.Context, requesterID, mine, theirs int64) (*model.SwapRequest, error) {
				Expect(requesterID).To(Equal(int64(1)))
				Expect(mine).To(Equal(int64(10)))
				Expect(theirs).To(Equal(int64(20)))
				return &model.SwapRequest{ID: 3, RequesterID: 1, RecipientID: 2, RequesterSlotID: mine, RecipientSlotID: theirs, Status: model.SwapStatusPending}, nil
			}

			w := doRequest(r, http.MethodPost, "/api/swap-request", "token-1", map[string]any{"mySlotId": 10, "theirSlotId": 20})
			Expect(w.Code).To(Equal(http.StatusCreated))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["status"]).To(Equal("PENDING"))
			Expect(resp["recipientId"]).To(BeEquivalentTo(2))
		})

		It("returns 400 when slot ids are missing", func() {
			w := doRequest(r, http.MethodPost, "/api/swap-request", "token-1", map[string]any{"mySlotId": 10})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		DescribeTable("maps exchange errors",
			func(err error, want int) {
				exchange.proposeFn = func(context.Context, int64, int64, int64) (*model.SwapRequest, error) {
					return nil, err
				}
				w := doRequest(r, http.MethodPost, "/api/swap-request", "token-1", map[string]any{"mySlotId": 10, "theirSlotId": 20})
				Expect(w.Code).To(Equal(want))
			},
			Entry("validation", model.ErrValidation, http.StatusBadRequest),
			Entry("slot not found", model.ErrNotFound, http.StatusNotFound),
			Entry("slot not swappable", model.ErrInvalidState, http.StatusBadRequest),
			Entry("pending conflict", model.ErrConflict, http.StatusConflict),
			Entry("storage", errors.New("boom"), http.StatusInternalServerError),
		)
	})

	Describe("Respond", func() {
		It("accepts when accept is true", func() {
			exchange.resolveFn = func(_ context.Context, recipientID, proposalID int64, d model.Decision) (*model.SwapRequest, error) {
				Expect(recipientID).To(Equal(int64(2)))
				Expect(proposalID).To(Equal(int64(3)))
				Expect(d).To(Equal(model.DecisionAccept))
				return &model.SwapRequest{ID: 3, Status: model.SwapStatusAccepted}, nil
			}

			w := doRequest(r, http.MethodPost, "/api/swap-response/3", "token-2", map[string]any{"accept": true})
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("rejects when accept is false", func() {
			exchange.resolveFn = func(_ context.Context, _, _ int64, d model.Decision) (*model.SwapRequest, error) {
				Expect(d).To(Equal(model.DecisionReject))
				return &model.SwapRequest{ID: 3, Status: model.SwapStatusRejected}, nil
			}

			w := doRequest(r, http.MethodPost, "/api/swap-response/3", "token-2", map[string]any{"accept": false})
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("returns 400 when accept is missing", func() {
			w := doRequest(r, http.MethodPost, "/api/swap-response/3", "token-2", map[string]any{})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 404 for an already resolved proposal", func() {
			exchange.resolveFn = func(context.Context, int64, int64, model.Decision) (*model.SwapRequest, error) {
				return nil, model.ErrNotFound
			}
			w := doRequest(r, http.MethodPost, "/api/swap-response/3", "token-2", map[string]any{"accept": true})
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("Incoming and Outgoing", func() {
		It("lists proposals for the caller", func() {
			exchange.incomingFn = func(_ context.Context, userID int64) ([]*model.SwapRequestDetails, error) {
				Expect(userID).To(Equal(int64(2)))
				return []*model.SwapRequestDetails{{SwapRequest: model.SwapRequest{ID: 3}, CounterpartName: "alice"}}, nil
			}

			w := doRequest(r, http.MethodGet, "/api/swap-requests/incoming", "token-2", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"counterpartName":"alice"`))

			w = doRequest(r, http.MethodGet, "/api/swap-requests/outgoing", "token-2", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`[]`))
		})
	})

	Describe("database health", func() {
		It("returns 503 when the database is down", func() {
			db.err = errors.New("refused")
			w := doRequest(r, http.MethodGet, "/api/health/db", "", nil)
			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		})
	})
})
