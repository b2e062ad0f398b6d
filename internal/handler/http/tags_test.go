package http

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-quote-keeper/internal/service"
	"github.com/MKhiriev/go-quote-keeper/models"
)

func TestListTags_TypeIsNormalized(t *testing.T) {
	router, m := newTestRouter(t)
	m.tags.EXPECT().ListTags(gomock.Any(), testUserID, models.TagCustom).
		Return([]models.Tag{{ID: 12, Name: "stoic", Type: models.TagCustom}}, nil)

	rr := serve(t, router, http.MethodGet, "/api/tags?type=custom", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"type":"CUSTOM"`)
}

func TestListTags_AllTypes(t *testing.T) {
	router, m := newTestRouter(t)
	m.tags.EXPECT().ListTags(gomock.Any(), testUserID, models.TagType("")).Return(nil, nil)

	rr := serve(t, router, http.MethodGet, "/api/tags", nil)

	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestCreateTag(t *testing.T) {
	router, m := newTestRouter(t)
	request := models.CreateTagRequest{Name: "stoic"}
	m.tags.EXPECT().CreateTag(gomock.Any(), testUserID, request).Return(models.Tag{ID: 12, Name: "stoic", Type: models.TagCustom}, nil)

	rr := serve(t, router, http.MethodPost, "/api/tags", request)

	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestUpdateTag_ClearsColor(t *testing.T) {
	router, m := newTestRouter(t)
	m.tags.EXPECT().UpdateTag(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, update models.TagUpdate) (models.Tag, error) {
			assert.Equal(t, int64(12), update.ID)
			assert.Equal(t, testUserID, update.UserID)
			assert.True(t, update.Color.Present)
			assert.Nil(t, update.Color.Value)
			return models.Tag{ID: 12}, nil
		},
	)

	rr := serve(t, router, http.MethodPut, "/api/tags/12", `{"color":null}`)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestDeleteTag_Builtin(t *testing.T) {
	router, m := newTestRouter(t)
	m.tags.EXPECT().DeleteTag(gomock.Any(), testUserID, int64(1)).
		Return(fmt.Errorf("%w: %w", service.ErrForbidden, service.ErrBuiltinTag))

	rr := serve(t, router, http.MethodDelete, "/api/tags/1", nil)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Contains(t, decodeError(t, rr), service.ErrBuiltinTag.Error())
}
