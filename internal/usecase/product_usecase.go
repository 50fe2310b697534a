package usecase

import (
	"context"

	"saturnalia/internal/domain/entity"
	"saturnalia/internal/domain/repository"
	"saturnalia/pkg/errors"
	"saturnalia/pkg/metrics"
)

type ProductUseCase struct {
	productRepo repository.ProductRepository
}

func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{
		productRepo: productRepo,
	}
}

type ProductInput struct {
	Name        string
	Price       float64
	ImageURL    string
	Description string
	Inventory   int
}

func (uc *ProductUseCase) validate(input ProductInput) error {
	if input.Name == "" {
		return errors.BadRequest("Product name is required", nil)
	}
	if input.Price < 0 {
		return errors.BadRequest("Product price must not be negative", nil)
	}
	return nil
}

func (uc *ProductUseCase) CreateProduct(ctx context.Context, input ProductInput) (*entity.Product, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:        input.Name,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Description: input.Description,
		Inventory:   input.Inventory,
	}

	err := uc.productRepo.Create(ctx, product)
	metrics.RecordMutation("product_create", err)
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) UpdateProduct(ctx context.Context, id string, input ProductInput) (*entity.Product, error) {
	if err := uc.validate(input); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Price = input.Price
	product.ImageURL = input.ImageURL
	product.Description = input.Description
	product.Inventory = input.Inventory

	err = uc.productRepo.Update(ctx, product)
	metrics.RecordMutation("product_update", err)
	if err != nil {
		return nil, err
	}

	return product, nil
}

func (uc *ProductUseCase) DeleteProduct(ctx context.Context, id string) error {
	err := uc.productRepo.Delete(ctx, id)
	metrics.RecordMutation("product_delete", err)
	return err
}

func (uc *ProductUseCase) GetProductByID(ctx context.Context, id string) (*entity.Product, error) {
	return uc.productRepo.GetByID(ctx, id)
}

func (uc *ProductUseCase) ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, int64, error) {
	return uc.productRepo.List(ctx, limit, offset)
}
