package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-quote-keeper/internal/config"
	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/internal/utils"
	"github.com/MKhiriev/go-quote-keeper/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu     sync.RWMutex
	tokens models.TokenPair

	logger *logger.Logger
}

// NewHTTPServerAdapter returns a REST implementation of [ServerAdapter] bound
// to cfg.ServerURL.
func NewHTTPServerAdapter(cfg config.ClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := config.NormalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func (h *httpServerAdapter) SetTokens(pair models.TokenPair) {
	h.mu.Lock()
	defer h.mu.Unlock()

	pair.AccessToken = strings.TrimSpace(pair.AccessToken)
	pair.RefreshToken = strings.TrimSpace(pair.RefreshToken)
	h.tokens = pair
}

func (h *httpServerAdapter) Tokens() models.TokenPair {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.tokens
}

func (h *httpServerAdapter) Register(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/auth/register", credentials)
}

func (h *httpServerAdapter) Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error) {
	return h.authenticate(ctx, "/api/auth/login", credentials)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, credentials models.Credentials) (models.AuthResponse, error) {
	var response models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(credentials).
		SetResult(&response).
		Post(path)
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("request %s: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	h.SetTokens(response.TokenPair)
	return response, nil
}

// Refresh rotates the token pair. A rejected refresh token clears the pair.
func (h *httpServerAdapter) Refresh(ctx context.Context) (models.TokenPair, error) {
	refreshToken := h.Tokens().RefreshToken
	if refreshToken == "" {
		return models.TokenPair{}, ErrNotLoggedIn
	}

	var response models.AuthResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.RefreshRequest{RefreshToken: refreshToken}).
		SetResult(&response).
		Post("/api/auth/refresh")
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("refresh request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrUnauthorized) {
			h.SetTokens(models.TokenPair{})
		}
		return models.TokenPair{}, err
	}

	h.SetTokens(response.TokenPair)
	h.logger.Debug().Time("access_expires_at", response.AccessExpiresAt).Msg("token pair refreshed")
	return response.TokenPair, nil
}

// Logout forgets the local tokens even when the server call fails.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	refreshToken := h.Tokens().RefreshToken
	defer h.SetTokens(models.TokenPair{})

	if refreshToken == "" {
		return nil
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.RefreshRequest{RefreshToken: refreshToken}).
		Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) Profile(ctx context.Context) (models.User, error) {
	var user models.User
	err := h.authed(ctx, &user, func(r *resty.Request) (*resty.Response, error) {
		return r.Get("/api/users/profile")
	})
	return user, err
}

func (h *httpServerAdapter) ListRootFolders(ctx context.Context) ([]models.FolderSummary, error) {
	var folders []models.FolderSummary
	err := h.authed(ctx, &folders, func(r *resty.Request) (*resty.Response, error) {
		return r.Get("/api/folders")
	})
	return folders, err
}

func (h *httpServerAdapter) CreateRootFolder(ctx context.Context, name string) (models.Folder, error) {
	var folder models.Folder
	err := h.authed(ctx, &folder, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(models.CreateFolderRequest{Name: name}).Post("/api/folders")
	})
	return folder, err
}

func (h *httpServerAdapter) CreateSubfolder(ctx context.Context, parentID int64, name string) (models.Folder, error) {
	var folder models.Folder
	err := h.authed(ctx, &folder, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(models.CreateFolderRequest{Name: name}).Post(folderPath(parentID, "/subfolders"))
	})
	return folder, err
}

func (h *httpServerAdapter) GetFolder(ctx context.Context, id int64) (models.Folder, error) {
	var folder models.Folder
	err := h.authed(ctx, &folder, func(r *resty.Request) (*resty.Response, error) {
		return r.Get(folderPath(id, ""))
	})
	return folder, err
}

func (h *httpServerAdapter) GetSubtree(ctx context.Context, id int64) (*models.FolderTree, error) {
	var tree models.FolderTree
	err := h.authed(ctx, &tree, func(r *resty.Request) (*resty.Response, error) {
		return r.Get(folderPath(id, "/tree"))
	})
	if err != nil {
		return nil, err
	}
	return &tree, nil
}

func (h *httpServerAdapter) FindPathToRoot(ctx context.Context, id int64) ([]int64, error) {
	var path []int64
	err := h.authed(ctx, &path, func(r *resty.Request) (*resty.Response, error) {
		return r.Get(folderPath(id, "/path"))
	})
	return path, err
}

func (h *httpServerAdapter) RenameFolder(ctx context.Context, id int64, name string) (models.Folder, error) {
	var folder models.Folder
	err := h.authed(ctx, &folder, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(models.RenameFolderRequest{Name: name}).Put(folderPath(id, ""))
	})
	return folder, err
}

func (h *httpServerAdapter) DeleteFolder(ctx context.Context, id int64) error {
	return h.authed(ctx, nil, func(r *resty.Request) (*resty.Response, error) {
		return r.Delete(folderPath(id, ""))
	})
}

func (h *httpServerAdapter) ListQuotes(ctx context.Context, filter models.QuoteFilter) ([]models.Quote, error) {
	var quotes []models.Quote
	err := h.authed(ctx, &quotes, func(r *resty.Request) (*resty.Response, error) {
		return r.SetQueryParamsFromValues(quoteQuery(filter)).Get("/api/quotes")
	})
	return quotes, err
}

func (h *httpServerAdapter) CreateQuote(ctx context.Context, request models.CreateQuoteRequest) (models.Quote, error) {
	var quote models.Quote
	err := h.authed(ctx, &quote, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(request).Post("/api/quotes")
	})
	return quote, err
}

func (h *httpServerAdapter) DeleteQuote(ctx context.Context, id int64) error {
	return h.authed(ctx, nil, func(r *resty.Request) (*resty.Response, error) {
		return r.Delete("/api/quotes/" + strconv.FormatInt(id, 10))
	})
}

func (h *httpServerAdapter) ListTags(ctx context.Context, tagType models.TagType) ([]models.Tag, error) {
	var tags []models.Tag
	err := h.authed(ctx, &tags, func(r *resty.Request) (*resty.Response, error) {
		if tagType != "" {
			r.SetQueryParam("type", string(tagType))
		}
		return r.Get("/api/tags")
	})
	return tags, err
}

func (h *httpServerAdapter) CreateTag(ctx context.Context, request models.CreateTagRequest) (models.Tag, error) {
	var tag models.Tag
	err := h.authed(ctx, &tag, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(request).Post("/api/tags")
	})
	return tag, err
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.VersionInfo, error) {
	var info models.VersionInfo

	resp, err := h.client.R().SetContext(ctx).SetResult(&info).Get("/api/version/")
	if err != nil {
		return models.VersionInfo{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.VersionInfo{}, err
	}
	return info, nil
}

// authed sends the request built by send with the current access token and
// decodes a 2xx body into out. On 401 it refreshes the token pair once and
// sends the request again.
func (h *httpServerAdapter) authed(ctx context.Context, out any, send func(*resty.Request) (*resty.Response, error)) error {
	if h.Tokens().AccessToken == "" && h.Tokens().RefreshToken == "" {
		return ErrNotLoggedIn
	}

	resp, err := send(h.authedRequest(ctx))
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}

	if resp.StatusCode() == http.StatusUnauthorized && h.Tokens().RefreshToken != "" {
		h.logger.Debug().Str("func", "*httpServerAdapter.authed").Str("url", resp.Request.URL).Msg("access token rejected, refreshing")
		if _, refreshErr := h.Refresh(ctx); refreshErr != nil {
			return errors.Join(mapHTTPError(resp), refreshErr)
		}

		resp, err = send(h.authedRequest(ctx))
		if err != nil {
			return fmt.Errorf("request: %w", err)
		}
	}

	if err = mapHTTPError(resp); err != nil {
		return err
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err = json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Tokens().AccessToken; token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func folderPath(id int64, suffix string) string {
	return "/api/folders/" + strconv.FormatInt(id, 10) + suffix
}

func quoteQuery(filter models.QuoteFilter) url.Values {
	query := url.Values{}
	if filter.FolderID != nil {
		query.Set("folderId", strconv.FormatInt(*filter.FolderID, 10))
	}
	if filter.TagID != nil {
		query.Set("tagId", strconv.FormatInt(*filter.TagID, 10))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query.Set("search", search)
	}
	if filter.Limit > 0 {
		query.Set("limit", strconv.FormatUint(filter.Limit, 10))
	}
	if filter.Offset > 0 {
		query.Set("offset", strconv.FormatUint(filter.Offset, 10))
	}
	return query
}
