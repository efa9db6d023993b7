package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/vuhoang-dev/store-backend/internal/apperror"
	"github.com/vuhoang-dev/store-backend/internal/metrics"
	"github.com/vuhoang-dev/store-backend/internal/model"
	"github.com/vuhoang-dev/store-backend/internal/repository"
	"github.com/vuhoang-dev/store-backend/internal/slug"
)

// User-facing validation messages. These are part of the API contract.
const (
	MsgProductExists         = "Sản phẩm đã tồn tại"
	MsgProductNotFound       = "Không tìm thấy sản phẩm"
	MsgInvalidCategoryIDs    = "Có ID danh mục không hợp lệ"
	MsgSalePriceRequired     = "Vui lòng nhập giá khuyến mãi"
	MsgSalePriceTooHigh      = "Giá khuyến mãi phải nhỏ hơn giá gốc"
	MsgSaleDatesRequired     = "Vui lòng nhập ngày bắt đầu và kết thúc khuyến mãi"
	MsgSaleEndRequired       = "Vui lòng nhập ngày kết thúc khuyến mãi"
	MsgSaleStartInPast       = "Thời gian bắt đầu sale không được nhỏ hơn hôm nay"
	MsgSaleEndNotAfterToday  = "Ngày kết thúc khuyến mãi phải lớn hơn hôm nay ít nhất 1 ngày"
	MsgSaleStartNotBeforeEnd = "Ngày bắt đầu khuyến mãi phải trước ngày kết thúc"
	MsgNoSaleWithSalePrice   = "Không có khuyến mãi nên không thể nhập giá khuyến mãi"
	MsgNoSaleWithEndDate     = "Không có khuyến mãi nên không thể nhập ngày kết thúc khuyến mãi"
	MsgNoSaleWithStartDate   = "Không có khuyến mãi nên không thể nhập ngày bắt đầu khuyến mãi"
	MsgNoSaleWithSaleFields  = "Không có khuyến mãi nên không thể nhập các thông tin sale"
	MsgInvalidPage           = "Số trang không hợp lệ"
	MsgInvalidPageSize       = "Kích thước trang không hợp lệ"
)

// CreateProductRequest carries the input for creating a product.
type CreateProductRequest struct {
	Title       string
	Description string
	Price       decimal.Decimal
	IsOnSale    bool
	SalePrice   *decimal.Decimal
	StartSale   *time.Time
	EndSale     *time.Time
	CategoryIDs []uuid.UUID
}

// UpdateProductRequest carries the input for a partial product update.
// Nil fields mean "no change". An empty CategoryIDs list also means
// "no change"; categories are only replaced when a non-empty list is given.
type UpdateProductRequest struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	IsOnSale    bool
	SalePrice   *decimal.Decimal
	StartSale   *time.Time
	EndSale     *time.Time
	CategoryIDs []uuid.UUID
}

// ProductService validates and orchestrates product operations.
type ProductService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
}

// NewProductService creates a new ProductService.
func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository) *ProductService {
	return &ProductService{
		products:   products,
		categories: categories,
	}
}

// List returns one page of products ordered by creation time descending.
func (ps *ProductService) List(ctx context.Context, page, size int) (repository.Page[*model.Product], error) {
	if page < 0 {
		return repository.Page[*model.Product]{}, apperror.BadRequest(MsgInvalidPage)
	}
	if size <= 0 {
		return repository.Page[*model.Product]{}, apperror.BadRequest(MsgInvalidPageSize)
	}

	req := repository.PageRequest{Page: page, Size: size}.Normalize()
	products, total, err := ps.products.FindPage(ctx, req)
	if err != nil {
		return repository.Page[*model.Product]{}, err
	}

	return repository.NewPage(products, req, total), nil
}

// Create validates and persists a new product.
func (ps *ProductService) Create(ctx context.Context, request CreateProductRequest) (*model.Product, error) {
	productSlug := slug.Make(request.Title)

	exists, err := ps.products.ExistsBySlug(ctx, productSlug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.AlreadyExists(MsgProductExists)
	}

	categories, err := ps.resolveCategories(ctx, request.CategoryIDs)
	if err != nil {
		return nil, err
	}

	saleFields, err := validateSale(request.IsOnSale, request.Price, request.SalePrice, request.StartSale, request.EndSale, false)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Title:       request.Title,
		Slug:        productSlug,
		Description: request.Description,
		Price:       request.Price,
		IsOnSale:    request.IsOnSale,
		SalePrice:   saleFields.salePrice,
		StartSale:   saleFields.startSale,
		EndSale:     saleFields.endSale,
		Categories:  categories,
	}

	var created *model.Product
	err = ps.products.WithinTransaction(ctx, func(repo repository.ProductRepository) error {
		created, err = repo.Create(ctx, product)
		return err
	})
	if err != nil {
		// The slug pre-check is only an optimization; the unique index is
		// the authoritative guard under concurrent creates.
		var uniqueErr *repository.UniqueConstraintError
		if errors.As(err, &uniqueErr) {
			return nil, apperror.AlreadyExists(MsgProductExists)
		}
		return nil, err
	}

	metrics.ProductsCreated.Inc()
	return created, nil
}

// GetBySlug returns the product with the given slug.
func (ps *ProductService) GetBySlug(ctx context.Context, productSlug string) (*model.Product, error) {
	product, err := ps.products.FindBySlug(ctx, productSlug)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(MsgProductNotFound)
		}
		return nil, err
	}
	return product, nil
}

// Update applies a partial update to a product.
func (ps *ProductService) Update(ctx context.Context, id uuid.UUID, request UpdateProductRequest) (*model.Product, error) {
	product, err := ps.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NotFound(MsgProductNotFound)
		}
		return nil, err
	}

	if request.Title != nil && *request.Title != product.Title {
		newSlug := slug.Make(*request.Title)
		exists, err := ps.products.ExistsBySlug(ctx, newSlug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperror.AlreadyExists(MsgProductExists)
		}
		product.Title = *request.Title
		product.Slug = newSlug
	}

	// A non-empty list replaces the categories wholesale; an empty or absent
	// list leaves them unchanged.
	if len(request.CategoryIDs) > 0 {
		categories, err := ps.resolveCategories(ctx, request.CategoryIDs)
		if err != nil {
			return nil, err
		}
		product.Categories = categories
	}

	if request.Description != nil {
		product.Description = *request.Description
	}
	if request.Price != nil {
		product.Price = *request.Price
	}

	// The sale price is compared against the effective price: the new price
	// when given, the stored one otherwise (already applied above). Turning
	// the sale off clears the sale fields, but only after rejecting any sale
	// field supplied alongside.
	product.IsOnSale = request.IsOnSale
	saleFields, err := validateSale(request.IsOnSale, product.Price, request.SalePrice, request.StartSale, request.EndSale, true)
	if err != nil {
		return nil, err
	}
	product.SalePrice = saleFields.salePrice
	product.StartSale = saleFields.startSale
	product.EndSale = saleFields.endSale

	var updated *model.Product
	err = ps.products.WithinTransaction(ctx, func(repo repository.ProductRepository) error {
		updated, err = repo.Update(ctx, product)
		return err
	})
	if err != nil {
		var uniqueErr *repository.UniqueConstraintError
		if errors.As(err, &uniqueErr) {
			return nil, apperror.AlreadyExists(MsgProductExists)
		}
		return nil, err
	}

	metrics.ProductsUpdated.Inc()
	return updated, nil
}

// Delete removes a product by ID.
func (ps *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	exists, err := ps.products.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperror.NotFound(MsgProductNotFound)
	}

	err = ps.products.WithinTransaction(ctx, func(repo repository.ProductRepository) error {
		return repo.DeleteByID(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperror.NotFound(MsgProductNotFound)
		}
		return err
	}

	metrics.ProductsDeleted.Inc()
	return nil
}

// resolveCategories maps category identifiers to records. A count mismatch
// means at least one identifier is unknown.
func (ps *ProductService) resolveCategories(ctx context.Context, ids []uuid.UUID) ([]model.Category, error) {
	categories, err := ps.categories.FindAllByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(ids) {
		return nil, apperror.BadRequest(MsgInvalidCategoryIDs)
	}
	return categories, nil
}

// saleFields holds the validated sale attributes with the default start date applied.
type saleFields struct {
	salePrice *decimal.Decimal
	startSale *time.Time
	endSale   *time.Time
}

// validateSale enforces the sale-pricing rules. When isOnSale is false it
// rejects any supplied sale field; when true it runs the full rule ladder
// and defaults the start date to today when only the end date is given.
// combinedOffMessage selects the single-message form used by updates.
func validateSale(isOnSale bool, price decimal.Decimal, salePrice *decimal.Decimal, startSale, endSale *time.Time, combinedOffMessage bool) (saleFields, error) {
	if !isOnSale {
		if combinedOffMessage {
			if salePrice != nil || startSale != nil || endSale != nil {
				return saleFields{}, apperror.BadRequest(MsgNoSaleWithSaleFields)
			}
			return saleFields{}, nil
		}
		if salePrice != nil {
			return saleFields{}, apperror.BadRequest(MsgNoSaleWithSalePrice)
		}
		if endSale != nil {
			return saleFields{}, apperror.BadRequest(MsgNoSaleWithEndDate)
		}
		if startSale != nil {
			return saleFields{}, apperror.BadRequest(MsgNoSaleWithStartDate)
		}
		return saleFields{}, nil
	}

	if salePrice == nil {
		return saleFields{}, apperror.BadRequest(MsgSalePriceRequired)
	}
	if salePrice.GreaterThan(price) {
		return saleFields{}, apperror.BadRequest(MsgSalePriceTooHigh)
	}
	if startSale == nil && endSale == nil {
		return saleFields{}, apperror.BadRequest(MsgSaleDatesRequired)
	}
	if endSale == nil {
		return saleFields{}, apperror.BadRequest(MsgSaleEndRequired)
	}

	today := dateOnly(time.Now())
	if startSale != nil && dateOnly(*startSale).Before(today) {
		return saleFields{}, apperror.BadRequest(MsgSaleStartInPast)
	}
	if !dateOnly(*endSale).After(today) {
		return saleFields{}, apperror.BadRequest(MsgSaleEndNotAfterToday)
	}
	if startSale != nil && !dateOnly(*startSale).Before(dateOnly(*endSale)) {
		return saleFields{}, apperror.BadRequest(MsgSaleStartNotBeforeEnd)
	}
	if startSale == nil {
		startSale = &today
	}

	return saleFields{salePrice: salePrice, startSale: startSale, endSale: endSale}, nil
}

// dateOnly truncates a timestamp to its calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
