package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/ai"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/view"
)

const (
	ownerSeller      = "Owner"
	selfSeller       = "Me"
	sellPrice        = 180.00
	suggestedPrice   = "120.00"
	listedColor      = "bg-green-500"
	manualScientific = "Organic Selection"
)

// AddProduct lists a product from the owner's form. Name, price and image
// are required; a failed check changes nothing.
func (s *Storefront) AddProduct(ctx context.Context, form models.ProductForm) (models.Product, error) {
	name := strings.TrimSpace(form.Name)
	if name == "" || strings.TrimSpace(form.Price) == "" || form.Image == "" {
		return models.Product{}, fmt.Errorf("%w: please fill in name, price, and upload an image", ErrValidation)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(form.Price), 64)
	if err != nil || price < 0 {
		return models.Product{}, fmt.Errorf("%w: price must be a non-negative number", ErrValidation)
	}

	description := strings.TrimSpace(form.Description)
	if description == "" {
		description = "Freshly added to inventory."
	}
	nutrients := form.Nutrients
	if nutrients == (models.Nutrients{}) {
		nutrients = catalog.FallbackNutrients
	}

	product := models.Product{
		ID:             s.newID(),
		Name:           name,
		ScientificName: manualScientific,
		Description:    description,
		Origin:         "Owner Store",
		Season:         "Available Now",
		Benefits:       []string{"High Quality", "Freshly Stocked"},
		Nutrients:      nutrients,
		Color:          listedColor,
		Image:          form.Image,
		Price:          models.PricePtr(price),
		IsForSale:      true,
		SellerName:     ownerSeller,
	}

	if err := s.insert(ctx, product, false); err != nil {
		return models.Product{}, err
	}
	s.logger.Info("product added", "product_id", product.ID, "name", product.Name)
	return product, nil
}

// SellWithPhoto identifies the produce in image and lists it for sale by the
// visitor, then opens the market. A failed or nameless identification lists
// nothing and returns ErrIdentifyFailed.
func (s *Storefront) SellWithPhoto(ctx context.Context, image []byte, mimeType string) (models.Product, error) {
	draft, err := s.gateway.Identify(ctx, image, mimeType)
	if err != nil {
		s.logger.Error("ai identification failed", "error", err)
		return models.Product{}, ErrIdentifyFailed
	}
	if draft == nil || strings.TrimSpace(draft.Name) == "" {
		return models.Product{}, ErrIdentifyFailed
	}

	product := productFromDraft(*draft)
	product.ID = s.newID()
	product.Image = dataURL(mimeType, image)

	if err := s.insert(ctx, product, true); err != nil {
		return models.Product{}, err
	}
	s.logger.Info("product listed from photo", "product_id", product.ID, "name", product.Name)
	return product, nil
}

// AutofillResult is an owner form after an identify attempt
type AutofillResult struct {
	Form       models.ProductForm `json:"form"`
	Identified bool               `json:"identified"`
}

// Autofill attaches image to the owner form and fills name, description,
// nutrients and a suggested price from the AI draft. Without a draft the
// other fields keep their values. If a newer autofill starts before this one
// returns, this one yields ai.ErrStaleResponse.
func (s *Storefront) Autofill(ctx context.Context, form models.ProductForm, image []byte, mimeType string) (AutofillResult, error) {
	form.Image = dataURL(mimeType, image)

	reqCtx, token, release := s.autofill.Start(ctx)
	defer release()

	draft, err := s.gateway.Identify(reqCtx, image, mimeType)
	if !s.autofill.Current(token) {
		return AutofillResult{}, ai.ErrStaleResponse
	}
	if err != nil {
		s.logger.Error("ai identification failed", "error", err)
		return AutofillResult{Form: form}, nil
	}

	return AutofillResult{Form: ApplyDraft(form, draft), Identified: draft != nil}, nil
}

// ApplyDraft copies identified fields into form; a nil draft leaves form unchanged
func ApplyDraft(form models.ProductForm, draft *models.ProductDraft) models.ProductForm {
	if draft == nil {
		return form
	}
	form.Name = draft.Name
	form.Description = draft.Description
	form.Price = suggestedPrice
	if draft.Nutrients != nil {
		form.Nutrients = *draft.Nutrients
	}
	return form
}

func (s *Storefront) insert(ctx context.Context, product models.Product, openMarket bool) error {
	return s.mutate(ctx, func() ([]string, error) {
		if err := s.catalog.InsertFront(product); err != nil {
			return nil, err
		}
		if !openMarket {
			return []string{CollectionCatalog}, nil
		}
		s.view.Navigate(view.Market)
		return []string{CollectionCatalog, CollectionView}, nil
	})
}

func productFromDraft(d models.ProductDraft) models.Product {
	nutrients := catalog.FallbackNutrients
	if d.Nutrients != nil {
		nutrients = *d.Nutrients
	}
	benefits := d.Benefits
	if benefits == nil {
		benefits = []string{}
	}
	return models.Product{
		Name:           d.Name,
		ScientificName: d.ScientificName,
		Description:    orDefault(d.Description, "Fresh and organic!"),
		Origin:         orDefault(d.Origin, "Local Farm"),
		Season:         orDefault(d.Season, "N/A"),
		Benefits:       benefits,
		Nutrients:      nutrients,
		Color:          listedColor,
		Price:          models.PricePtr(sellPrice),
		IsForSale:      true,
		SellerName:     selfSeller,
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func dataURL(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
