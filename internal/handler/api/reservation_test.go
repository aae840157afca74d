//go:build unit

package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel-booking/internal/domain/reservation"
	"hotel-booking/internal/domain/user"
	"hotel-booking/internal/handler/api"
	resdto "hotel-booking/internal/handler/dto/response"
	"hotel-booking/internal/pkg/errs"
	"hotel-booking/internal/usecase/commands"
	"hotel-booking/internal/usecase/queries"
	"hotel-booking/tests/common/builder"
	cmnhttptest "hotel-booking/tests/common/httptest"
	"hotel-booking/tests/common/testutil"
	commandsmock "hotel-booking/tests/mock/commands"
	queriesmock "hotel-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	s.router = newTestRouter()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/reservations/room-costs", s.handler.RoomCosts)
	s.router.POST("/reservations", s.handler.Create)
	s.router.GET("/reservations/:id", s.handler.Get)
	s.router.POST("/reservations/:id/guests", s.handler.AddGuests)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

type testCaseReservation struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *ReservationHandlerTestSuite) postWithKey(path string, body any, key string) *httptest.ResponseRecorder {
	s.T().Helper()
	return cmnhttptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, path, body, map[string]string{
		"Authorization":   "Bearer " + guestToken,
		"Idempotency-Key": key,
	})
}

// ================================================================================
// TestRoomCosts
// ================================================================================

func (s *ReservationHandlerTestSuite) TestRoomCosts() {
	url := "/reservations/room-costs"
	b := builder.NewReservationBuilder()
	reqBody := b.BuildRoomCostsRequestDTO()

	s.Run("正常系: 料金内訳を返す", func() {
		s.mockQueries.EXPECT().
			CalculateRoomCosts(gomock.Any(), b.RoomIDs, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ []uuid.UUID, checkIn, checkOut time.Time) (*queries.RoomCostView, error) {
				s.True(checkIn.Equal(b.CheckIn))
				s.True(checkOut.Equal(b.CheckOut))
				return b.BuildRoomCostView(), nil
			})

		rec := cmnhttptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, guestToken)

		var body envelope[resdto.RoomCostResponse]
		cmnhttptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.True(body.Success)
		s.Equal(int64(22000), body.Data.TotalCents)
		s.Equal(b.CheckIn.Format("2006-01-02"), body.Data.CheckIn)
		s.Len(body.Data.Rooms, 1)
	})

	cases := []testCaseReservation{
		{name: "room_ids欠落", mutate: testutil.Field("room_ids", nil), expectCode: http.StatusBadRequest},
		{name: "room_ids空配列", mutate: testutil.Field("room_ids", []string{}), expectCode: http.StatusBadRequest},
		{name: "check_in欠落", mutate: testutil.Field("check_in", nil), expectCode: http.StatusBadRequest},
		{name: "check_out形式不正", mutate: testutil.Field("check_out", "2025/06/04"), expectCode: http.StatusBadRequest},
		{name: "room_idsがUUIDでない", mutate: testutil.Field("room_ids", []string{"room-101"}), expectCode: http.StatusBadRequest},
	}
	for _, tc := range cases {
		s.Run("異常系: "+tc.name, func() {
			rec := cmnhttptest.PerformRequest(s.T(), s.router, http.MethodPost, url, testutil.DtoMap(s.T(), reqBody, tc.mutate), guestToken)
			cmnhttptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
		})
	}

	s.Run("異常系: 宿泊期間の検証エラーは400", func() {
		s.mockQueries.EXPECT().
			CalculateRoomCosts(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, reservation.ErrCheckOutNotAfter)

		rec := cmnhttptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, guestToken)

		cmnhttptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "check-out date must be after check-in date")
	})

	s.Run("異常系: 存在しない部屋はコマンド面なので400", func() {
		s.mockQueries.EXPECT().
			CalculateRoomCosts(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, reservation.ErrRoomNotFound)

		rec := cmnhttptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, guestToken)

		cmnhttptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "rooms were not found")
	})
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservations"
	b := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) { b.UserID = testGuest.ID })
	reqBody := b.BuildCreateRequestDTO()
	view := b.BuildView()

	s.Run("正常系: 201とLocationヘッダを返す", func() {
		s.mockCommands.EXPECT().
			CreateReservation(gomock.Any(), gomock.Any(), testGuest, gomock.Nil()).
			DoAndReturn(func(_ context.Context, in commands.CreateReservationInput, _ user.Actor, _ *uuid.UUID) (*commands.CreateReservationResult, error) {
				s.Equal(b.RoomIDs, in.RoomIDs)
				s.True(in.CheckIn.Equal(b.CheckIn))
				s.True(in.CheckOut.Equal(b.CheckOut))
				return &commands.CreateReservationResult{ReservationID: b.ID}, nil
			})
		s.mockQueries.EXPECT().GetByIDSystem(gomock.Any(), b.ID).Return(view, nil)

		rec := cmnhttptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, guestToken)

		var body envelope[resdto.ReservationResponse]
		cmnhttptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(b.ID, body.Data.ID)
		s.Equal(view.TotalCents, body.Data.TotalCents)
		s.Equal("Reservation created", body.Message)
		cmnhttptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/reservations/" + b.ID.String()})
	})

	s.Run("正常系: 同じIdempotency-Keyの再送は200で初回の結果を返す", func() {
		key := uuid.New()
		s.mockCommands.EXPECT().
			CreateReservation(gomock.Any(), gomock.Any(), testGuest, &key).
			Return(&commands.CreateReservationResult{ReservationID: b.ID, IsReplayed: true}, nil)
		s.mockQueries.EXPECT().GetByIDSystem(gomock.Any(), b.ID).Return(view, nil)

		rec := s.postWithKey(url, reqBody, key.String())

		var body envelope[resdto.ReservationResponse]
		cmnhttptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(b.ID, body.Data.ID)
	})

	s.Run("異常系: Idempotency-KeyがUUIDでない", func() {
		rec := s.postWithKey(url, reqBody, "not-a-uuid")

		cmnhttptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key must be a UUID")
	})

	s.Run("異常系: 空室なしは400", func() {
		s.mockCommands.EXPECT().
			CreateReservation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, reservation.ErrRoomUnavailable)

		rec := cmnhttptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, guestToken)

		cmnhttptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "not available")
	})

	s.Run("異常系: 同じキーを別リクエストに使うと400", func() {
		key := uuid.New()
		s.mockCommands.EXPECT().
			CreateReservation(gomock.Any(), gomock.Any(), gomock.Any(), &key).
			Return(nil, commands.ErrIdempotencyKeyReused)

		rec := s.postWithKey(url, reqBody, key.String())

		cmnhttptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "idempotency key")
	})

	s.Run("異常系: 想定外のエラーは500で詳細を隠す", func() {
		s.mockCommands.EXPECT().
			CreateReservation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errs.New("connection reset by peer"))

		rec := cmnhttptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, guestToken)

		cmnhttptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
		s.NotContains(rec.Body.String(), "connection reset")
	})

	s.Run("異常系: 未認証", func() {
		rec := cmnhttptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		cmnhttptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ReservationHandlerTestSuite) TestGet() {
	b := builder.NewReservationBuilder()
	url := "/reservations/" + b.ID.String()

	s.Run("正常系: 予約詳細を返す", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), testAdmin, b.ID).Return(b.BuildView(), nil)

		rec := cmnhttptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, adminToken)

		var body envelope[resdto.ReservationResponse]
		cmnhttptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(b.ID, body.Data.ID)
		s.Equal(b.CheckOut.Format("2006-01-02"), body.Data.CheckOut)
	})

	s.Run("異常系: 見つからない場合は404", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), testGuest, b.ID).Return(nil, reservation.ErrReservationNotFound)

		rec := cmnhttptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, guestToken)

		cmnhttptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "reservation not found")
	})

	s.Run("異常系: IDがUUIDでない", func() {
		rec := cmnhttptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/abc", nil, guestToken)

		cmnhttptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid reservation id")
	})
}

// ================================================================================
// TestAddGuests
// ================================================================================

func (s *ReservationHandlerTestSuite) TestAddGuests() {
	b := builder.NewReservationBuilder()
	url := "/reservations/" + b.ID.String() + "/guests"
	reqBody := b.BuildAddGuestsRequestDTO()

	s.Run("正常系: ゲストを登録して件数を返す", func() {
		s.mockCommands.EXPECT().
			AddGuests(gomock.Any(), b.ID, gomock.Any(), testGuest).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, guests []reservation.GuestDetail, _ user.Actor) (*commands.AddGuestsResult, error) {
				s.Require().Len(guests, 1)
				s.Equal("Hanako", guests[0].FirstName)
				s.Equal(b.RoomIDs[0], guests[0].RoomID)
				return &commands.AddGuestsResult{ReservationID: b.ID, Added: 1}, nil
			})

		rec := cmnhttptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, guestToken)

		var body envelope[resdto.GuestsAdded]
		cmnhttptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(int64(1), body.Data.Added)
	})

	s.Run("異常系: guestsが空", func() {
		rec := cmnhttptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"guests": []any{}}, guestToken)

		cmnhttptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("異常系: 必須項目の欠けたゲスト", func() {
		guest := testutil.DtoMap(s.T(), b.BuildGuestRequestDTO(), testutil.Field("last_name", nil))

		rec := cmnhttptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"guests": []any{guest}}, guestToken)

		cmnhttptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("異常系: 予約に含まれない部屋は400", func() {
		s.mockCommands.EXPECT().
			AddGuests(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, reservation.ErrRoomNotInReservation)

		rec := cmnhttptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, guestToken)

		cmnhttptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "room does not belong")
	})
}
