package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/direct-chat/internal/model"
	"github.com/iliyamo/direct-chat/internal/repository"
)

func setupMessageHandler(t *testing.T) (*MessageHandler, sqlmock.Sqlmock, *fakeUploader, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	up := &fakeUploader{url: "https://cdn.example.com/messages/x.png"}
	h := NewMessageHandler(repository.NewUserRepo(db), repository.NewMessageRepo(db), up)
	return h, mock, up, func() { db.Close() }
}

// msgCtx builds an authenticated request context with the :id path param
// set, the way the router and gate would.
func msgCtx(method, body string, caller *model.User, otherID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(otherID)
	withUser(c, caller)
	return c, rec
}

func TestSend_EmptyBodyParts(t *testing.T) {
	h, mock, up, cleanup := setupMessageHandler(t)
	defer cleanup()

	c, rec := msgCtx(http.MethodPost, `{"text":"   "}`, &model.User{ID: 1}, "2")
	require.NoError(t, h.Send(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Zero(t, up.calls)
	// No message row may be created.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSend_ToSelf(t *testing.T) {
	h, mock, _, cleanup := setupMessageHandler(t)
	defer cleanup()

	c, rec := msgCtx(http.MethodPost, `{"text":"hi"}`, &model.User{ID: 1}, "1")
	require.NoError(t, h.Send(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSend_ReceiverMissing(t *testing.T) {
	h, mock, _, cleanup := setupMessageHandler(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,full_name,email,password_hash,profile_pic,created_at,updated_at FROM users WHERE id=? LIMIT 1")).
		WithArgs(uint64(2)).
		WillReturnError(sql.ErrNoRows)

	c, rec := msgCtx(http.MethodPost, `{"text":"hi"}`, &model.User{ID: 1}, "2")
	require.NoError(t, h.Send(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSend_Text(t *testing.T) {
	h, mock, _, cleanup := setupMessageHandler(t)
	defer cleanup()

	selectUserByID(mock, 2, "Bob", "bob@x.com", "$2a$04$hash", "")
	now := time.Now()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO messages (sender_id, receiver_id, text, image) VALUES (?,?,?,?)")).
		WithArgs(uint64(1), uint64(2), "hi", "").
		WillReturnResult(sqlmock.NewResult(10, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,sender_id,receiver_id,text,image,created_at FROM messages WHERE id=? LIMIT 1")).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sender_id", "receiver_id", "text", "image", "created_at"}).
			AddRow(10, 1, 2, "hi", "", now))

	c, rec := msgCtx(http.MethodPost, `{"text":"hi"}`, &model.User{ID: 1, FullName: "Alice"}, "2")
	require.NoError(t, h.Send(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp messagePart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, uint64(10), resp.ID)
	require.Equal(t, uint64(1), resp.SenderID)
	require.Equal(t, uint64(2), resp.ReceiverID)
	require.Equal(t, "hi", resp.Text)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSend_ImageUploadsFirst(t *testing.T) {
	h, mock, up, cleanup := setupMessageHandler(t)
	defer cleanup()

	selectUserByID(mock, 2, "Bob", "bob@x.com", "$2a$04$hash", "")
	now := time.Now()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO messages (sender_id, receiver_id, text, image) VALUES (?,?,?,?)")).
		WithArgs(uint64(1), uint64(2), "", up.url).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,sender_id,receiver_id,text,image,created_at FROM messages WHERE id=? LIMIT 1")).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sender_id", "receiver_id", "text", "image", "created_at"}).
			AddRow(11, 1, 2, "", up.url, now))

	c, rec := msgCtx(http.MethodPost, `{"image":"data:image/png;base64,aGk="}`, &model.User{ID: 1}, "2")
	require.NoError(t, h.Send(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, 1, up.calls)
	require.Equal(t, "messages", up.gotFolder)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHistory_OrderedPassthrough(t *testing.T) {
	h, mock, _, cleanup := setupMessageHandler(t)
	defer cleanup()

	base := time.Now()
	mock.ExpectQuery("SELECT id,sender_id,receiver_id,text,image,created_at FROM messages").
		WithArgs(uint64(1), uint64(2), uint64(2), uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sender_id", "receiver_id", "text", "image", "created_at"}).
			AddRow(10, 1, 2, "hi", "", base).
			AddRow(11, 2, 1, "hey", "", base.Add(time.Second)))

	c, rec := msgCtx(http.MethodGet, "", &model.User{ID: 1}, "2")
	require.NoError(t, h.History(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []messagePart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	require.Equal(t, "hi", resp[0].Text)
	require.Equal(t, "hey", resp[1].Text)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHistory_BadUserID(t *testing.T) {
	h, _, _, cleanup := setupMessageHandler(t)
	defer cleanup()

	c, rec := msgCtx(http.MethodGet, "", &model.User{ID: 1}, "abc")
	require.NoError(t, h.History(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSidebar_ExcludesCaller(t *testing.T) {
	h, mock, _, cleanup := setupMessageHandler(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id,full_name,email,password_hash,profile_pic,created_at,updated_at FROM users WHERE id<>? ORDER BY id ASC")).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "password_hash", "profile_pic", "created_at", "updated_at"}).
			AddRow(2, "Bob", "bob@x.com", "$2a$04$hash", "", now, now).
			AddRow(3, "Carol", "carol@x.com", "$2a$04$hash", "", now, now))

	c, rec := msgCtx(http.MethodGet, "", &model.User{ID: 1}, "")
	require.NoError(t, h.Sidebar(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []userPart
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	for _, u := range resp {
		require.NotEqual(t, uint64(1), u.ID)
	}
	require.NotContains(t, rec.Body.String(), "$2a$")
	require.NoError(t, mock.ExpectationsWereMet())
}
