package httpapi

import (
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/volley-club/internal/domain/fixture"
	"github.com/riskibarqy/volley-club/internal/domain/player"
	"github.com/riskibarqy/volley-club/internal/usecase"
)

const (
	defaultUploadMaxBytes int64 = 5 << 20
	jsonBodyMaxBytes      int64 = 1 << 20
	multipartMemory       int64 = 8 << 20
	imageFormField              = "image"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"omitempty,max=72"`
	CurrentPassword string `json:"currentPassword" validate:"required_with=Password"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=member admin"`
}

type playerStatsRequest struct {
	Kills  int `json:"kills" validate:"min=0"`
	Aces   int `json:"aces" validate:"min=0"`
	Digs   int `json:"digs" validate:"min=0"`
	Blocks int `json:"blocks" validate:"min=0"`
}

type playerRequest struct {
	Name         string              `json:"name" validate:"required,max=100"`
	Positions    []string            `json:"positions" validate:"required,min=1,dive,player_position"`
	JerseyNumber *int                `json:"jerseyNumber" validate:"required,min=1,max=99"`
	Age          *int                `json:"age" validate:"required,min=16,max=45"`
	Nationality  string              `json:"nationality" validate:"required,max=60"`
	Stats        *playerStatsRequest `json:"stats" validate:"omitempty"`
	RemoveImage  bool                `json:"removeImage"`
}

var playerForm = formSchema{
	"name":         formText,
	"positions":    formJSON,
	"jerseyNumber": formNumber,
	"age":          formNumber,
	"nationality":  formText,
	"stats":        formJSON,
	"removeImage":  formBool,
}

func (req playerRequest) input(image *usecase.ImageUpload) usecase.PlayerInput {
	in := usecase.PlayerInput{
		Name:         req.Name,
		Positions:    req.Positions,
		JerseyNumber: derefInt(req.JerseyNumber),
		Age:          derefInt(req.Age),
		Nationality:  req.Nationality,
		Image:        image,
		RemoveImage:  req.RemoveImage,
	}
	if req.Stats != nil {
		in.Stats = player.Stats{
			Kills:  req.Stats.Kills,
			Aces:   req.Stats.Aces,
			Digs:   req.Stats.Digs,
			Blocks: req.Stats.Blocks,
		}
	}
	return in
}

type scoreRequest struct {
	Home int `json:"home" validate:"min=0"`
	Away int `json:"away" validate:"min=0"`
}

type fixtureRequest struct {
	Opponent    string        `json:"opponent" validate:"required,max=100"`
	Date        string        `json:"date" validate:"required"`
	Venue       string        `json:"venue" validate:"required,oneof=Home Away"`
	Status      string        `json:"status" validate:"omitempty,oneof=Upcoming Live Completed Cancelled"`
	Score       *scoreRequest `json:"score" validate:"omitempty"`
	Competition string        `json:"competition" validate:"required,max=100"`
}

func (req fixtureRequest) input() (usecase.FixtureInput, error) {
	date, err := parseFixtureDate(req.Date)
	if err != nil {
		return usecase.FixtureInput{}, invalidField("date")
	}
	in := usecase.FixtureInput{
		Opponent:    req.Opponent,
		Date:        date,
		Venue:       req.Venue,
		Status:      req.Status,
		Competition: req.Competition,
	}
	if req.Score != nil {
		in.Score = fixture.Score{Home: req.Score.Home, Away: req.Score.Away}
	}
	return in, nil
}

// parseFixtureDate accepts RFC 3339 timestamps and plain calendar dates.
func parseFixtureDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

type newsRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Content     string `json:"content" validate:"required"`
	Category    string `json:"category" validate:"required,news_category"`
	RemoveImage bool   `json:"removeImage"`
}

var newsForm = formSchema{
	"title":       formText,
	"content":     formText,
	"category":    formText,
	"removeImage": formBool,
}

func (req newsRequest) input(image *usecase.ImageUpload) usecase.NewsInput {
	return usecase.NewsInput{
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		Image:       image,
		RemoveImage: req.RemoveImage,
	}
}

type storeItemRequest struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Price       *float64 `json:"price" validate:"required,min=0"`
	Stock       *int     `json:"stock" validate:"omitempty,min=0"`
	Status      string   `json:"status"`
	Description string   `json:"description" validate:"max=2000"`
	Category    string   `json:"category" validate:"required,store_category"`
	Sizes       []string `json:"sizes" validate:"omitempty,dive,store_size"`
	RemoveImage bool     `json:"removeImage"`
}

var storeItemForm = formSchema{
	"name":        formText,
	"price":       formNumber,
	"stock":       formNumber,
	"status":      formText,
	"description": formText,
	"category":    formText,
	"sizes":       formJSON,
	"removeImage": formBool,
}

func (req storeItemRequest) input(image *usecase.ImageUpload) usecase.StoreItemInput {
	in := usecase.StoreItemInput{
		Name:        req.Name,
		Status:      req.Status,
		Description: req.Description,
		Category:    req.Category,
		Sizes:       req.Sizes,
		Image:       image,
		RemoveImage: req.RemoveImage,
	}
	if req.Price != nil {
		in.Price = *req.Price
	}
	in.Stock = derefInt(req.Stock)
	return in
}

type leagueRowRequest struct {
	TeamName string `json:"teamName" validate:"required,max=100"`
	Played   int    `json:"played" validate:"min=0"`
	Wins     int    `json:"wins" validate:"min=0"`
	Losses   int    `json:"losses" validate:"min=0"`
	Points   int    `json:"points" validate:"min=0"`
	Position *int   `json:"position" validate:"required,min=1"`
}

func (req leagueRowRequest) input() usecase.LeagueRowInput {
	return usecase.LeagueRowInput{
		TeamName: req.TeamName,
		Played:   req.Played,
		Wins:     req.Wins,
		Losses:   req.Losses,
		Points:   req.Points,
		Position: derefInt(req.Position),
	}
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

type formKind int

const (
	formText formKind = iota
	formNumber
	formJSON
	formBool
)

// formSchema maps multipart field names to how their string value is coerced
// before the form is decoded into the same struct as a JSON body.
type formSchema map[string]formKind

// decodeJSON reads a JSON body into dst. An empty body decodes as an empty object.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, jsonBodyMaxBytes)
	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: request body exceeds %d bytes", usecase.ErrInvalidInput, tooLarge.Limit)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// upload is an image attached to a multipart request. Close releases the part.
type upload struct {
	image *usecase.ImageUpload
	file  multipart.File
}

func (u upload) Close() {
	if u.file != nil {
		_ = u.file.Close()
	}
}

// decodeEntity accepts application/json or multipart/form-data and decodes both into dst.
func (h *Handler) decodeEntity(w http.ResponseWriter, r *http.Request, schema formSchema, dst any) (upload, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		return upload{}, decodeJSON(w, r, dst)
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxBytes+jsonBodyMaxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return upload{}, fmt.Errorf("%w: request body exceeds %d bytes", usecase.ErrInvalidInput, tooLarge.Limit)
		}
		return upload{}, fmt.Errorf("%w: invalid multipart form: %v", usecase.ErrInvalidInput, err)
	}

	fields, err := schema.coerce(r.MultipartForm.Value)
	if err != nil {
		return upload{}, err
	}
	raw, err := sonic.Marshal(fields)
	if err != nil {
		return upload{}, fmt.Errorf("%w: encode form fields: %v", usecase.ErrInvalidInput, err)
	}
	decoder := sonic.ConfigDefault.NewDecoder(strings.NewReader(string(raw)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return upload{}, fmt.Errorf("%w: invalid form fields: %v", usecase.ErrInvalidInput, err)
	}

	file, header, err := r.FormFile(imageFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return upload{}, nil
		}
		return upload{}, fmt.Errorf("%w: read image: %v", usecase.ErrInvalidInput, err)
	}
	return upload{
		image: &usecase.ImageUpload{Filename: header.Filename, Size: header.Size, Content: file},
		file:  file,
	}, nil
}

func (s formSchema) coerce(values map[string][]string) (map[string]any, error) {
	out := make(map[string]any, len(values))
	var invalid []usecase.FieldError
	for name, vs := range values {
		kind, ok := s[name]
		if !ok {
			invalid = append(invalid, usecase.FieldError{Field: name, Reason: usecase.FieldReasonInvalid})
			continue
		}
		if len(vs) == 0 {
			continue
		}
		raw := strings.TrimSpace(vs[0])
		if raw == "" && kind != formText {
			continue
		}

		switch kind {
		case formText:
			out[name] = vs[0]
		case formNumber:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
				invalid = append(invalid, usecase.FieldError{Field: name, Reason: usecase.FieldReasonInvalid})
				continue
			}
			out[name] = n
		case formBool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				invalid = append(invalid, usecase.FieldError{Field: name, Reason: usecase.FieldReasonInvalid})
				continue
			}
			out[name] = b
		case formJSON:
			var v any
			if err := sonic.UnmarshalString(raw, &v); err != nil {
				invalid = append(invalid, usecase.FieldError{Field: name, Reason: usecase.FieldReasonInvalid})
				continue
			}
			out[name] = v
		}
	}
	if len(invalid) > 0 {
		return nil, &usecase.ValidationError{Fields: invalid}
	}
	return out, nil
}
