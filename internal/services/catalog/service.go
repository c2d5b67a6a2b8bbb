package catalog

import (
	"unicode/utf8"

	"github.com/BearBump/DVCPortal/internal/apperr"
	"github.com/BearBump/DVCPortal/internal/models"
	"github.com/BearBump/DVCPortal/internal/query"
)

const (
	MsgCategoryNotFound = "Không tìm thấy danh mục"

	DefaultPopularLimit = 6
	DefaultNewsLimit    = 5

	searchMinLen        = 2
	searchMaxServices   = 5
	searchMaxCategories = 3
)

// Store is the read side of the loaded dataset plus the view counter.
type Store interface {
	Services() []models.Service
	Categories() []models.Category
	Category(id string) (models.Category, bool)
	Service(id string) (models.Service, bool)
	IncrementViews(id string) (models.Service, bool)
	News() []models.NewsItem
	Statistics() map[string]any
	ElectionInfo() map[string]any
}

type Service struct {
	store Store
}

func New(store Store) *Service {
	return &Service{store: store}
}

// ListParams are the raw query values of GET /api/services.
type ListParams struct {
	Category string
	Search   string
	Status   string
	Page     string
	Limit    string
}

type SearchResult struct {
	Services   []models.Service  `json:"services"`
	Categories []models.Category `json:"categories"`
}

type CategoryServices struct {
	Category   models.Category  `json:"category"`
	Services   []models.Service `json:"services"`
	Pagination query.Pagination `json:"pagination"`
}

func (s *Service) Categories() []models.Category {
	return s.store.Categories()
}

func (s *Service) ListServices(p ListParams) ([]models.Service, query.Pagination, error) {
	page, err := query.ParsePage(p.Page, p.Limit, query.DefaultLimit)
	if err != nil {
		return nil, query.Pagination{}, err
	}
	items := query.Filter(s.store.Services(),
		query.Equals(p.Category, func(v models.Service) string { return v.CategoryID }),
		query.Equals(p.Status, func(v models.Service) string { return v.Status }),
		query.Contains(p.Search, serviceName, serviceShort),
	)
	out, meta := query.Paginate(items, page)
	return out, meta, nil
}

// Popular returns services by views, most viewed first. The store order is
// left untouched.
func (s *Service) Popular(rawLimit string) ([]models.Service, error) {
	limit, err := query.ParseLimit(rawLimit, DefaultPopularLimit)
	if err != nil {
		return nil, err
	}
	return query.TopBy(s.store.Services(), limit, func(v models.Service) int { return v.Views }), nil
}

// Detail counts a view and resolves the category and related services.
func (s *Service) Detail(id string) (models.ServiceDetail, error) {
	svc, ok := s.store.IncrementViews(id)
	if !ok {
		return models.ServiceDetail{}, apperr.NotFound(apperr.MsgServiceNotFound)
	}

	d := models.ServiceDetail{Service: svc, RelatedServices: []models.Service{}}
	if cat, ok := s.store.Category(svc.CategoryID); ok {
		d.Category = &cat
	}
	for _, relID := range svc.RelatedServices {
		if rel, ok := s.store.Service(relID); ok {
			d.RelatedServices = append(d.RelatedServices, rel)
		}
	}
	return d, nil
}

// Lookup returns a service without counting a view.
func (s *Service) Lookup(id string) (models.Service, bool) {
	return s.store.Service(id)
}

func (s *Service) CategoryServices(id, rawPage, rawLimit string) (CategoryServices, error) {
	cat, ok := s.store.Category(id)
	if !ok {
		return CategoryServices{}, apperr.NotFound(MsgCategoryNotFound)
	}
	page, err := query.ParsePage(rawPage, rawLimit, query.DefaultLimit)
	if err != nil {
		return CategoryServices{}, err
	}
	items := query.Filter(s.store.Services(),
		query.Equals(id, func(v models.Service) string { return v.CategoryID }),
	)
	out, meta := query.Paginate(items, page)
	return CategoryServices{Category: cat, Services: out, Pagination: meta}, nil
}

// Search matches services and categories by substring. Queries shorter than
// two characters return empty lists.
func (s *Service) Search(q string) SearchResult {
	res := SearchResult{Services: []models.Service{}, Categories: []models.Category{}}
	// q не обрезается: " a" ищется как есть
	if utf8.RuneCountInString(q) < searchMinLen {
		return res
	}

	svcs := query.Filter(s.store.Services(), query.Substring(q, serviceName, serviceShort, serviceFull))
	res.Services = query.Head(svcs, searchMaxServices)

	cats := query.Filter(s.store.Categories(), query.Substring(q,
		func(c models.Category) string { return c.Name },
		func(c models.Category) string { return c.Description },
	))
	res.Categories = query.Head(cats, searchMaxCategories)
	return res
}

func (s *Service) News(rawLimit string) ([]models.NewsItem, error) {
	limit, err := query.ParseLimit(rawLimit, DefaultNewsLimit)
	if err != nil {
		return nil, err
	}
	return query.Head(s.store.News(), limit), nil
}

func (s *Service) Statistics() map[string]any {
	return s.store.Statistics()
}

func (s *Service) ElectionInfo() map[string]any {
	return s.store.ElectionInfo()
}

func serviceName(v models.Service) string  { return v.Name }
func serviceShort(v models.Service) string { return v.ShortDescription }
func serviceFull(v models.Service) string  { return v.FullDescription }
