package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/Freeeeeet/slot_swapper/internal/controller/http/router"
	"github.com/Freeeeeet/slot_swapper/internal/model"
)

func doRequest(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var _ = Describe("SlotHandler", func() {
	var (
		r        *gin.Engine
		slots    *mockSlotService
		exchange *mockExchangeService
		start    time.Time
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		slots = &mockSlotService{}
		exchange = &mockExchangeService{}
		start = time.Date(2025, 11, 10, 10, 0, 0, 0, time.UTC)
		r = router.New(router.Deps{
			Slots:    slots,
			Exchange: exchange,
			DB:       &mockPinger{},
			Tokens:   stubTokens{},
			Logger:   zap.NewNop(),
		})
	})

	Describe("authentication", func() {
		It("returns 401 without a token", func() {
			w := doRequest(r, http.MethodGet, "/api/events", "", nil)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})

		It("returns 403 with an invalid token", func() {
			w := doRequest(r, http.MethodGet, "/api/events", "forged", nil)
			Expect(w.Code).To(Equal(http.StatusForbidden))
		})

		It("keeps health endpoints public", func() {
			w := doRequest(r, http.MethodGet, "/api/health", "", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("X-Request-ID")).NotTo(BeEmpty())

			w = doRequest(r, http.MethodGet, "/api/health/db", "", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
		})
	})

	Describe("List", func() {
		It("returns the caller's slots", func() {
			slots.listMineFn = func(_ context.Context, ownerID int64) ([]*model.Slot, error) {
				Expect(ownerID).To(Equal(int64(1)))
				return []*model.Slot{{ID: 5, OwnerID: 1, Title: "standup", Status: model.SlotStatusBusy}}, nil
			}

			w := doRequest(r, http.MethodGet, "/api/events", "token-1", nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp []map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp).To(HaveLen(1))
			Expect(resp[0]["title"]).To(Equal("standup"))
			Expect(resp[0]["status"]).To(Equal("BUSY"))
		})

		It("returns an empty array rather than null", func() {
			w := doRequest(r, http.MethodGet, "/api/events", "token-1", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(strings.TrimSpace(w.Body.String())).To(Equal("[]"))
		})

		It("returns 500 on storage failure", func() {
			slots.listMineFn = func(context.Context, int64) ([]*model.Slot, error) {
				return nil, errors.New("connection reset")
			}
			w := doRequest(r, http.MethodGet, "/api/events", "token-1", nil)
			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Body.String()).NotTo(ContainSubstring("connection reset"))
		})
	})

	Describe("Calendar", func() {
		It("serves an iCalendar feed", func() {
			slots.listMineFn = func(context.Context, int64) ([]*model.Slot, error) {
				return []*model.Slot{{ID: 5, Title: "standup", StartTime: start, EndTime: start.Add(time.Hour), Status: model.SlotStatusBusy}}, nil
			}

			w := doRequest(r, http.MethodGet, "/api/events.ics", "token-1", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(HavePrefix("text/calendar"))
			Expect(w.Body.String()).To(ContainSubstring("BEGIN:VEVENT"))
			Expect(w.Body.String()).To(ContainSubstring("SUMMARY:standup"))
		})
	})

	Describe("Create", func() {
		It("returns 201 with the created slot", func() {
			slots.createFn = func(_ context.Context, ownerID int64, title string, s, e time.Time, status model.SlotStatus) (*model.Slot, error) {
				Expect(ownerID).To(Equal(int64(1)))
				Expect(status).To(Equal(model.SlotStatusSwappable))
				return &model.Slot{ID: 9, OwnerID: ownerID, Title: title, StartTime: s, EndTime: e, Status: status}, nil
			}

			w := doRequest(r, http.MethodPost, "/api/events", "token-1", map[string]any{
				"title":     "review",
				"startTime": start,
				"endTime":   start.Add(time.Hour),
				"status":    "SWAPPABLE",
			})
			Expect(w.Code).To(Equal(http.StatusCreated))

			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["id"]).To(BeEquivalentTo(9))
		})

		It("returns 400 when required fields are missing", func() {
			w := doRequest(r, http.MethodPost, "/api/events", "token-1", map[string]any{"title": "x"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 on validation errors", func() {
			slots.createFn = func(context.Context, int64, string, time.Time, time.Time, model.SlotStatus) (*model.Slot, error) {
				return nil, model.ErrValidation
			}
			w := doRequest(r, http.MethodPost, "/api/events", "token-1", map[string]any{
				"title": "x", "startTime": start, "endTime": start, "status": "SWAP_PENDING",
			})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Update", func() {
		It("passes only the provided fields", func() {
			slots.updateFn = func(_ context.Context, ownerID, slotID int64, upd model.SlotUpdate) (*model.Slot, error) {
				Expect(slotID).To(Equal(int64(7)))
				Expect(upd.Title).To(BeNil())
				Expect(upd.Status).NotTo(BeNil())
				Expect(*upd.Status).To(Equal(model.SlotStatusSwappable))
				return &model.Slot{ID: slotID, OwnerID: ownerID, Status: *upd.Status}, nil
			}

			w := doRequest(r, http.MethodPut, "/api/events/7", "token-1", map[string]any{"status": "SWAPPABLE"})
			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("returns 409 while the slot is locked by a swap", func() {
			slots.updateFn = func(context.Context, int64, int64, model.SlotUpdate) (*model.Slot, error) {
				return nil, model.ErrConflict
			}
			w := doRequest(r, http.MethodPut, "/api/events/7", "token-1", map[string]any{"title": "y"})
			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("returns 400 for a malformed id", func() {
			w := doRequest(r, http.MethodPut, "/api/events/abc", "token-1", map[string]any{"title": "y"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Delete", func() {
		DescribeTable("maps service errors",
			func(err error, want int) {
				slots.deleteFn = func(context.Context, int64, int64) error { return err }
				w := doRequest(r, http.MethodDelete, "/api/events/7", "token-1", nil)
				Expect(w.Code).To(Equal(want))
			},
			Entry("deleted", nil, http.StatusOK),
			Entry("not mine", model.ErrNotFound, http.StatusNotFound),
			Entry("locked", model.ErrConflict, http.StatusConflict),
			Entry("storage", errors.New("boom"), http.StatusInternalServerError),
		)
	})

	Describe("Swappable", func() {
		It("lists other users' swappable slots", func() {
			slots.listSwappableFn = func(_ context.Context, userID int64) ([]*model.SwappableSlot, error) {
				Expect(userID).To(Equal(int64(2)))
				return []*model.SwappableSlot{{Slot: model.Slot{ID: 3, OwnerID: 1}, OwnerName: "alice"}}, nil
			}

			w := doRequest(r, http.MethodGet, "/api/swappable-slots", "token-2", nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp []map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp[0]["userName"]).To(Equal("alice"))
		})
	})
})
