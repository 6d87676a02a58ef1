package handlers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/edumart/edumart/internal/domain/errors"
	"github.com/edumart/edumart/internal/domain/model"
	pkgAuth "github.com/edumart/edumart/internal/pkg/auth"
	"github.com/edumart/edumart/internal/pkg/webhook"
	"github.com/edumart/edumart/internal/server/http/dto"
	"github.com/edumart/edumart/internal/server/http/middleware"
	testhelpers "github.com/edumart/edumart/internal/test"
	"github.com/edumart/edumart/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func performRequest(t *testing.T, method, path string, handler gin.HandlerFunc, setup func(*gin.Context), body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, path, func(c *gin.Context) {
		if setup != nil {
			setup(c)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func asUser(userID, role string) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, userID)
		c.Set(middleware.ClaimsContextKey, &pkgAuth.Claims{UserID: userID, Name: "Ada", Email: "ada@example.com", Role: role})
	}
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != "" {
		t.Fatalf("expected empty id when not set, got %q", got)
	}

	c.Set(middleware.UserIDContextKey, "user_42")
	if got := CurrentUserID(c); got != "user_42" {
		t.Fatalf("expected user_42, got %q", got)
	}
}

func TestCurrentClaims(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentClaims(c); got != nil {
		t.Fatalf("expected nil claims when not set, got %+v", got)
	}

	c.Set(middleware.ClaimsContextKey, &pkgAuth.Claims{UserID: "user_1"})
	if got := CurrentClaims(c); got == nil || got.UserID != "user_1" {
		t.Fatalf("unexpected claims: %+v", got)
	}
}

func TestCourseHandlerList(t *testing.T) {
	stub := &testhelpers.PlatformFacadeStub{CoursesFn: func(context.Context) ([]model.Course, error) {
		return []model.Course{{ID: 1, Title: "Intro to Go", Price: 4999}}, nil
	}}

	resp := performRequest(t, http.MethodGet, "/courses", NewCourseHandler(stub).List, nil, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var courses []dto.CourseResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &courses); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(courses) != 1 || courses[0].Title != "Intro to Go" {
		t.Fatalf("unexpected courses: %+v", courses)
	}
}

func TestCourseHandlerGetNotFound(t *testing.T) {
	stub := &testhelpers.PlatformFacadeStub{CourseFn: func(context.Context, int64) (*model.Course, error) {
		return nil, domainErrors.ErrNotFound
	}}

	resp := performRequest(t, http.MethodGet, "/courses/99", NewCourseHandler(stub).Get, func(c *gin.Context) {
		c.Params = append(c.Params, gin.Param{Key: "id", Value: "99"})
	}, nil, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestCourseHandlerGetBadID(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/courses/abc", NewCourseHandler(&testhelpers.PlatformFacadeStub{}).Get, nil, nil, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCourseHandlerCreate(t *testing.T) {
	stub := &testhelpers.PlatformFacadeStub{CreateCourseFn: func(_ context.Context, course model.Course) (*model.Course, error) {
		if course.EducatorID != "edu_1" {
			t.Fatalf("expected educator id from claims, got %q", course.EducatorID)
		}
		course.ID = 7
		return &course, nil
	}}

	body, _ := json.Marshal(dto.CreateCourseRequest{Title: "Intro to Go", Price: 4999})
	resp := performRequest(t, http.MethodPost, "/courses", NewCourseHandler(stub).Create, asUser("edu_1", "educator"), body, nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var course dto.CourseResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &course); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if course.ID != 7 {
		t.Fatalf("unexpected course id %d", course.ID)
	}
}

func TestCourseHandlerCreateValidation(t *testing.T) {
	stub := &testhelpers.PlatformFacadeStub{CreateCourseFn: func(context.Context, model.Course) (*model.Course, error) {
		return nil, fmt.Errorf("%w: title is required", domainErrors.ErrValidation)
	}}

	body, _ := json.Marshal(dto.CreateCourseRequest{Price: 100})
	resp := performRequest(t, http.MethodPost, "/courses", NewCourseHandler(stub).Create, asUser("edu_1", "educator"), body, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestUserHandlerMe(t *testing.T) {
	stub := &testhelpers.PlatformFacadeStub{EnsureUserFn: func(_ context.Context, user model.User) (*model.User, error) {
		if user.ID != "user_1" || user.Name != "Ada" {
			t.Fatalf("unexpected user from claims: %+v", user)
		}
		return &user, nil
	}}

	resp := performRequest(t, http.MethodGet, "/me", NewUserHandler(stub).Me, asUser("user_1", "student"), nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var user dto.UserResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if user.ID != "user_1" || user.Role != "student" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUserHandlerUpdateProgressNotEnrolled(t *testing.T) {
	stub := &testhelpers.PlatformFacadeStub{UpdateProgressFn: func(context.Context, string, int64, int) error {
		return domainErrors.ErrNotEnrolled
	}}

	body, _ := json.Marshal(dto.ProgressRequest{CourseID: 10, Progress: 50})
	resp := performRequest(t, http.MethodPost, "/progress", NewUserHandler(stub).UpdateProgress, asUser("user_1", "student"), body, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestUserHandlerGetProgress(t *testing.T) {
	stub := &testhelpers.PlatformFacadeStub{ProgressFn: func(_ context.Context, userID string, courseID int64) (int, error) {
		if userID != "user_1" || courseID != 10 {
			t.Fatalf("unexpected arguments: %s %d", userID, courseID)
		}
		return 75, nil
	}}

	resp := performRequest(t, http.MethodGet, "/progress/10", NewUserHandler(stub).GetProgress, func(c *gin.Context) {
		asUser("user_1", "student")(c)
		c.Params = append(c.Params, gin.Param{Key: "courseId", Value: "10"})
	}, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var progress dto.ProgressResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &progress); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if progress.Progress != 75 {
		t.Fatalf("unexpected progress %d", progress.Progress)
	}
}

func TestUserHandlerRateStatuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{name: "not enrolled", err: domainErrors.ErrNotEnrolled, code: http.StatusForbidden},
		{name: "duplicate", err: domainErrors.ErrAlreadyExists, code: http.StatusConflict},
		{name: "missing course", err: domainErrors.ErrNotFound, code: http.StatusNotFound},
		{name: "created", err: nil, code: http.StatusCreated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			review := testhelpers.RandomASCIIString(10, 40)
			stub := &testhelpers.PlatformFacadeStub{RateCourseFn: func(_ context.Context, rating model.Rating) error {
				if rating.Review != review {
					t.Fatalf("unexpected review: %q", rating.Review)
				}
				return tc.err
			}}
			body, _ := json.Marshal(dto.RatingRequest{CourseID: 10, Rating: 5, Review: review})
			resp := performRequest(t, http.MethodPost, "/ratings", NewUserHandler(stub).Rate, asUser("user_1", "student"), body, nil)
			if resp.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, resp.Code)
			}
		})
	}
}

func TestPurchaseHandlerCreate(t *testing.T) {
	stub := &testhelpers.PlatformFacadeStub{InitiateCheckoutFn: func(_ context.Context, userID string, courseID int64) (*model.CheckoutIntent, error) {
		if userID != "user_1" || courseID != 10 {
			t.Fatalf("unexpected arguments: %s %d", userID, courseID)
		}
		return &model.CheckoutIntent{SessionURL: "https://pay.example/cs_1"}, nil
	}}

	body, _ := json.Marshal(dto.PurchaseRequest{CourseID: 10})
	resp := performRequest(t, http.MethodPost, "/purchases", NewPurchaseHandler(stub).Create, asUser("user_1", "student"), body, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var checkout dto.CheckoutResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &checkout); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if checkout.SessionURL != "https://pay.example/cs_1" {
		t.Fatalf("unexpected checkout: %+v", checkout)
	}
}

func TestPurchaseHandlerCreateStatuses(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{name: "course missing", err: domainErrors.ErrNotFound, code: http.StatusNotFound},
		{name: "gateway down", err: domainErrors.ErrGatewayUnavailable, code: http.StatusBadGateway},
		{name: "storage failure", err: errors.New("boom"), code: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &testhelpers.PlatformFacadeStub{InitiateCheckoutFn: func(context.Context, string, int64) (*model.CheckoutIntent, error) {
				return nil, tc.err
			}}
			body, _ := json.Marshal(dto.PurchaseRequest{CourseID: 10})
			resp := performRequest(t, http.MethodPost, "/purchases", NewPurchaseHandler(stub).Create, asUser("user_1", "student"), body, nil)
			if resp.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, resp.Code)
			}
		})
	}
}

func TestPurchaseHandlerCreateRejectsBadBody(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/purchases", NewPurchaseHandler(&testhelpers.PlatformFacadeStub{}).Create, asUser("user_1", "student"), []byte("{"), nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}
}

const (
	identityTestSecret = "identity-secret"
	paymentTestSecret  = "payment-secret"
)

func newTestWebhookHandler(facade PlatformFacade) *WebhookHandler {
	return NewWebhookHandler(
		facade,
		webhook.NewIdentityVerifier(identityTestSecret, webhook.DefaultTolerance),
		webhook.NewPaymentVerifier(paymentTestSecret, webhook.DefaultTolerance),
		testLogger(),
	)
}

func identityHeaders(id string, payload []byte) map[string]string {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte(identityTestSecret))
	mac.Write([]byte(id + "." + timestamp + "."))
	mac.Write(payload)
	return map[string]string{
		"webhook-id":        id,
		"webhook-timestamp": timestamp,
		"webhook-signature": "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil)),
	}
}

func paymentHeaders(payload []byte) map[string]string {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte(paymentTestSecret))
	mac.Write([]byte(timestamp + "."))
	mac.Write(payload)
	return map[string]string{
		"Gateway-Signature": "t=" + timestamp + ",v1=" + hex.EncodeToString(mac.Sum(nil)),
	}
}

func TestWebhookIdentityRejectsBadSignature(t *testing.T) {
	handler := newTestWebhookHandler(&testhelpers.PlatformFacadeStub{ApplyUserCreatedFn: func(context.Context, model.User) error {
		t.Fatal("unverified event must not be applied")
		return nil
	}})

	payload := []byte(`{"type":"user.created","data":{"id":"user_1"}}`)
	headers := identityHeaders("msg_1", payload)
	headers["webhook-signature"] = "v1,Zm9yZ2Vk"

	resp := performRequest(t, http.MethodPost, "/webhooks/identity", handler.Identity, nil, payload, headers)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestWebhookIdentityUserCreated(t *testing.T) {
	var applied model.User
	handler := newTestWebhookHandler(&testhelpers.PlatformFacadeStub{ApplyUserCreatedFn: func(_ context.Context, user model.User) error {
		applied = user
		return nil
	}})

	payload, _ := json.Marshal(dto.IdentityEvent{
		Type: "user.created",
		Data: dto.IdentityUserData{
			ID:             "user_1",
			FirstName:      "Ada",
			LastName:       "Lovelace",
			ImageURL:       "https://img.example/a.png",
			EmailAddresses: []dto.IdentityEmail{{EmailAddress: "ada@example.com"}},
			PublicMetadata: dto.IdentityMetadata{Role: "educator"},
		},
	})

	resp := performRequest(t, http.MethodPost, "/webhooks/identity", handler.Identity, nil, payload, identityHeaders("msg_1", payload))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if applied.ID != "user_1" || applied.Name != "Ada Lovelace" || applied.Email != "ada@example.com" || applied.Role != model.RoleEducator {
		t.Fatalf("unexpected applied user: %+v", applied)
	}
}

func TestWebhookIdentityUnknownTypeAcked(t *testing.T) {
	handler := newTestWebhookHandler(&testhelpers.PlatformFacadeStub{
		ApplyUserCreatedFn: func(context.Context, model.User) error {
			t.Fatal("unknown event type must not be applied")
			return nil
		},
		ApplyUserUpdatedFn: func(context.Context, model.User) error {
			t.Fatal("unknown event type must not be applied")
			return nil
		},
	})

	payload := []byte(`{"type":"user.deleted","data":{"id":"user_1"}}`)
	resp := performRequest(t, http.MethodPost, "/webhooks/identity", handler.Identity, nil, payload, identityHeaders("msg_1", payload))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestWebhookIdentityStorageFailure(t *testing.T) {
	handler := newTestWebhookHandler(&testhelpers.PlatformFacadeStub{ApplyUserCreatedFn: func(context.Context, model.User) error {
		return errors.New("db down")
	}})

	payload := []byte(`{"type":"user.created","data":{"id":"user_1"}}`)
	resp := performRequest(t, http.MethodPost, "/webhooks/identity", handler.Identity, nil, payload, identityHeaders("msg_1", payload))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 so the provider redelivers, got %d", resp.Code)
	}
}

func TestWebhookPaymentCompleted(t *testing.T) {
	var gotSession string
	var gotOutcome usecase.Outcome
	handler := newTestWebhookHandler(&testhelpers.PlatformFacadeStub{ConfirmPaymentFn: func(_ context.Context, sessionID string, outcome usecase.Outcome) error {
		gotSession = sessionID
		gotOutcome = outcome
		return nil
	}})

	payload := []byte(`{"type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`)
	resp := performRequest(t, http.MethodPost, "/webhooks/payment", handler.Payment, nil, payload, paymentHeaders(payload))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotSession != "cs_1" || gotOutcome != usecase.OutcomeSuccess {
		t.Fatalf("unexpected confirm: %s %s", gotSession, gotOutcome)
	}
}

func TestWebhookPaymentRejectsBadSignature(t *testing.T) {
	handler := newTestWebhookHandler(&testhelpers.PlatformFacadeStub{ConfirmPaymentFn: func(context.Context, string, usecase.Outcome) error {
		t.Fatal("unverified event must not be confirmed")
		return nil
	}})

	payload := []byte(`{"type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`)
	resp := performRequest(t, http.MethodPost, "/webhooks/payment", handler.Payment, nil, payload, map[string]string{
		"Gateway-Signature": "t=" + strconv.FormatInt(time.Now().Unix(), 10) + ",v1=deadbeef",
	})
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestWebhookPaymentUnknownSessionAcked(t *testing.T) {
	handler := newTestWebhookHandler(&testhelpers.PlatformFacadeStub{ConfirmPaymentFn: func(context.Context, string, usecase.Outcome) error {
		return domainErrors.ErrUnknownSession
	}})

	payload := []byte(`{"type":"checkout.session.completed","data":{"object":{"id":"cs_ghost"}}}`)
	resp := performRequest(t, http.MethodPost, "/webhooks/payment", handler.Payment, nil, payload, paymentHeaders(payload))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected unknown session to be acked, got %d", resp.Code)
	}
}

func TestWebhookPaymentFailureOutcome(t *testing.T) {
	for _, eventType := range []string{"checkout.session.failed", "checkout.session.expired"} {
		var gotOutcome usecase.Outcome
		handler := newTestWebhookHandler(&testhelpers.PlatformFacadeStub{ConfirmPaymentFn: func(_ context.Context, _ string, outcome usecase.Outcome) error {
			gotOutcome = outcome
			return nil
		}})

		payload := []byte(`{"type":"` + eventType + `","data":{"object":{"id":"cs_1"}}}`)
		resp := performRequest(t, http.MethodPost, "/webhooks/payment", handler.Payment, nil, payload, paymentHeaders(payload))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", eventType, resp.Code)
		}
		if gotOutcome != usecase.OutcomeFailure {
			t.Fatalf("%s: expected failure outcome, got %s", eventType, gotOutcome)
		}
	}
}

func TestWebhookPaymentStorageFailure(t *testing.T) {
	handler := newTestWebhookHandler(&testhelpers.PlatformFacadeStub{ConfirmPaymentFn: func(context.Context, string, usecase.Outcome) error {
		return errors.New("db down")
	}})

	payload := []byte(`{"type":"checkout.session.completed","data":{"object":{"id":"cs_1"}}}`)
	resp := performRequest(t, http.MethodPost, "/webhooks/payment", handler.Payment, nil, payload, paymentHeaders(payload))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 so the gateway redelivers, got %d", resp.Code)
	}
}
