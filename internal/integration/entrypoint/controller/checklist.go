// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dowry-planner/backend/internal/application/usecase/checklist"
	domainerror "github.com/dowry-planner/backend/internal/domain/error"
	"github.com/dowry-planner/backend/internal/integration/entrypoint/dto"
	"github.com/dowry-planner/backend/internal/integration/entrypoint/middleware"
)

// ChecklistController handles checklist tree endpoints. The same handlers
// serve the owner's routes and the read-only share routes; the owner comes
// from the share middleware when present, from the JWT otherwise.
type ChecklistController struct {
	fetchTreeUseCase      *checklist.FetchTreeUseCase
	getProgressUseCase    *checklist.GetProgressUseCase
	createGroupUseCase    *checklist.CreateGroupUseCase
	createHierarchy       *checklist.CreateGroupWithHierarchyUseCase
	importTemplateUseCase *checklist.ImportTemplateUseCase
	updateGroupUseCase    *checklist.UpdateGroupUseCase
	deleteGroupUseCase    *checklist.DeleteGroupUseCase
	addCategoryUseCase    *checklist.AddCategoryUseCase
	updateCategoryUseCase *checklist.UpdateCategoryUseCase
	deleteCategoryUseCase *checklist.DeleteCategoryUseCase
	addProductUseCase     *checklist.AddProductUseCase
	updateProductUseCase  *checklist.UpdateProductUseCase
	deleteProductUseCase  *checklist.DeleteProductUseCase
}

// NewChecklistController creates a new checklist controller instance.
func NewChecklistController(
	fetchTreeUseCase *checklist.FetchTreeUseCase,
	getProgressUseCase *checklist.GetProgressUseCase,
	createGroupUseCase *checklist.CreateGroupUseCase,
	createHierarchy *checklist.CreateGroupWithHierarchyUseCase,
	importTemplateUseCase *checklist.ImportTemplateUseCase,
	updateGroupUseCase *checklist.UpdateGroupUseCase,
	deleteGroupUseCase *checklist.DeleteGroupUseCase,
	addCategoryUseCase *checklist.AddCategoryUseCase,
	updateCategoryUseCase *checklist.UpdateCategoryUseCase,
	deleteCategoryUseCase *checklist.DeleteCategoryUseCase,
	addProductUseCase *checklist.AddProductUseCase,
	updateProductUseCase *checklist.UpdateProductUseCase,
	deleteProductUseCase *checklist.DeleteProductUseCase,
) *ChecklistController {
	return &ChecklistController{
		fetchTreeUseCase:      fetchTreeUseCase,
		getProgressUseCase:    getProgressUseCase,
		createGroupUseCase:    createGroupUseCase,
		createHierarchy:       createHierarchy,
		importTemplateUseCase: importTemplateUseCase,
		updateGroupUseCase:    updateGroupUseCase,
		deleteGroupUseCase:    deleteGroupUseCase,
		addCategoryUseCase:    addCategoryUseCase,
		updateCategoryUseCase: updateCategoryUseCase,
		deleteCategoryUseCase: deleteCategoryUseCase,
		addProductUseCase:     addProductUseCase,
		updateProductUseCase:  updateProductUseCase,
		deleteProductUseCase:  deleteProductUseCase,
	}
}

// GetTree handles GET /checklist and GET /share/:code/tree requests.
func (c *ChecklistController) GetTree(ctx *gin.Context) {
	owner, ok := treeOwner(ctx)
	if !ok {
		return
	}

	output, err := c.fetchTreeUseCase.Execute(ctx.Request.Context(), checklist.FetchTreeInput{
		Owner: owner,
	})
	if err != nil {
		handleChecklistError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTreeResponse(output.Groups))
}

// GetProgress handles GET /checklist/progress and GET /share/:code/progress.
func (c *ChecklistController) GetProgress(ctx *gin.Context) {
	owner, ok := treeOwner(ctx)
	if !ok {
		return
	}

	output, err := c.getProgressUseCase.Execute(ctx.Request.Context(), checklist.GetProgressInput{
		Owner: owner,
	})
	if err != nil {
		handleChecklistError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProgressResponse(output))
}

// CreateGroup handles POST /checklist/groups requests.
func (c *ChecklistController) CreateGroup(ctx *gin.Context) {
	owner, ok := treeOwner(ctx)
	if !ok {
		return
	}

	var req dto.CreateGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badChecklistBody(ctx)
		return
	}

	output, err := c.createGroupUseCase.Execute(ctx.Request.Context(), checklist.CreateGroupInput{
		Owner: owner,
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
	})
	if err != nil {
		handleChecklistError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"id": output.GroupID.String()})
}

// CreateGroupHierarchy handles POST /checklist/groups/bulk requests.
func (c *ChecklistController) CreateGroupHierarchy(ctx *gin.Context) {
	owner, ok := treeOwner(ctx)
	if !ok {
		return
	}

	var req dto.CreateGroupHierarchyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badChecklistBody(ctx)
		return
	}

	categories := make([]checklist.CategorySpec, 0, len(req.Categories))
	for _, category := range req.Categories {
		products := make([]checklist.ProductSpec, 0, len(category.Products))
		for _, product := range category.Products {
			products = append(products, checklist.ProductSpec{
				Name:  product.Name,
				Brand: product.Brand,
				Price: dto.PriceFromFloat(product.Price),
				Notes: product.Notes,
			})
		}
		categories = append(categories, checklist.CategorySpec{
			Name:           category.Name,
			Description:    category.Description,
			TargetQuantity: category.TargetQuantity,
			Products:       products,
		})
	}

	output, err := c.createHierarchy.Execute(ctx.Request.Context(), checklist.CreateGroupWithHierarchyInput{
		Owner:      owner,
		Name:       req.Name,
		Icon:       req.Icon,
		Color:      req.Color,
		Categories: categories,
	})
	if err != nil {
		handleChecklistError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"id": output.GroupID.String()})
}

// ImportTemplate handles POST /checklist/template/import requests.
func (c *ChecklistController) ImportTemplate(ctx *gin.Context) {
	owner, ok := treeOwner(ctx)
	if !ok {
		return
	}

	var req dto.ImportTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badChecklistBody(ctx)
		return
	}

	output, err := c.importTemplateUseCase.Execute(ctx.Request.Context(), checklist.ImportTemplateInput{
		Owner: owner,
		Names: req.Names,
	})
	if err != nil {
		handleChecklistError(ctx, err)
		return
	}

	ids := make([]string, 0, len(output.GroupIDs))
	for _, id := range output.GroupIDs {
		ids = append(ids, id.String())
	}
	ctx.JSON(http.StatusCreated, gin.H{"imported": strconv.Itoa(len(ids)), "ids": ids})
}

// UpdateGroup handles PATCH /checklist/groups/:groupId requests.
func (c *ChecklistController) UpdateGroup(ctx *gin.Context) {
	owner, ok := treeOwner(ctx)
	if !ok {
		return
	}
	groupID, ok := pathID(ctx, "groupId")
	if !ok {
		return
	}

	var req dto.UpdateGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badChecklistBody(ctx)
		return
	}

	if _, err := c.updateGroupUseCase.Execute(ctx.Request.Context(), checklist.UpdateGroupInput{
		Owner:   owner,
		GroupID: groupID,
		Name:    req.Name,
		Icon:    req.Icon,
		Color:   req.Color,
	}); err != nil {
		handleChecklistError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Group updated"})
}

// DeleteGroup handles DELETE /checklist/groups/:groupId requests.
func (c *ChecklistController) DeleteGroup(ctx *gin.Context) {
	owner, ok := treeOwner(ctx)
	if !ok {
		return
	}
	groupID, ok := pathID(ctx, "groupId")
	if !ok {
		return
	}

	if _, err := c.deleteGroupUseCase.Execute(ctx.Request.Context(), checklist.DeleteGroupInput{
		Owner:   owner,
		GroupID: groupID,
	}); err != nil {
		handleChecklistError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Group deleted"})
}

// AddCategory handles POST /checklist/groups/:groupId/categories requests.
func (c *ChecklistController) AddCategory(ctx *gin.Context) {
	owner, ok := treeOwner(ctx)
	if !ok {
		return
	}
	groupID, ok := pathID(ctx, "groupId")
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badChecklistBody(ctx)
		return
	}

	output, err := c.addCategoryUseCase.Execute(ctx.Request.Context(), checklist.AddCategoryInput{
		Owner:          owner,
		GroupID:        groupID,
		Name:           req.Name,
		Description:    req.Description,
		TargetQuantity: req.TargetQuantity,
	})
	if err != nil {
		handleChecklistError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(output.Category))
}

// UpdateCategory handles PATCH .../categories/:categoryId requests.
func (c *ChecklistController) UpdateCategory(ctx *gin.Context) {
	owner, ok := treeOwner(ctx)
	if !ok {
		return
	}
	groupID, ok := pathID(ctx, "groupId")
	if !ok {
		return
	}
	categoryID, ok := pathID(ctx, "categoryId")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badChecklistBody(ctx)
		return
	}

	output, err := c.updateCategoryUseCase.Execute(ctx.Request.Context(), checklist.UpdateCategoryInput{
		Owner:          owner,
		GroupID:        groupID,
		CategoryID:     categoryID,
		Name:           req.Name,
		Description:    req.Description,
		TargetQuantity: req.TargetQuantity,
		IsCompleted:    req.IsCompleted,
	})
	if err != nil {
		handleChecklistError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(output.Category))
}

// DeleteCategory handles DELETE .../categories/:categoryId requests.
func (c *ChecklistController) DeleteCategory(ctx *gin.Context) {
	owner, ok := treeOwner(ctx)
	if !ok {
		return
	}
	groupID, ok := pathID(ctx, "groupId")
	if !ok {
		return
	}
	categoryID, ok := pathID(ctx, "categoryId")
	if !ok {
		return
	}

	if _, err := c.deleteCategoryUseCase.Execute(ctx.Request.Context(), checklist.DeleteCategoryInput{
		Owner:      owner,
		GroupID:    groupID,
		CategoryID: categoryID,
	}); err != nil {
		handleChecklistError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Category deleted"})
}

// AddProduct handles POST .../categories/:categoryId/products requests.
func (c *ChecklistController) AddProduct(ctx *gin.Context) {
	owner, ok := treeOwner(ctx)
	if !ok {
		return
	}
	groupID, ok := pathID(ctx, "groupId")
	if !ok {
		return
	}
	categoryID, ok := pathID(ctx, "categoryId")
	if !ok {
		return
	}

	var req dto.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badChecklistBody(ctx)
		return
	}

	output, err := c.addProductUseCase.Execute(ctx.Request.Context(), checklist.AddProductInput{
		Owner:             owner,
		GroupID:           groupID,
		CategoryID:        categoryID,
		Name:              req.Name,
		Brand:             req.Brand,
		Price:             dto.PriceFromFloat(req.Price),
		PurchasedQuantity: req.PurchasedQuantity,
		Notes:             req.Notes,
		IsPurchased:       req.IsPurchased,
	})
	if err != nil {
		handleChecklistError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToProductResponse(output.Product))
}

// UpdateProduct handles PATCH .../products/:productId requests.
func (c *ChecklistController) UpdateProduct(ctx *gin.Context) {
	owner, ok := treeOwner(ctx)
	if !ok {
		return
	}
	groupID, ok := pathID(ctx, "groupId")
	if !ok {
		return
	}
	categoryID, ok := pathID(ctx, "categoryId")
	if !ok {
		return
	}
	productID, ok := pathID(ctx, "productId")
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badChecklistBody(ctx)
		return
	}

	input := checklist.UpdateProductInput{
		Owner:             owner,
		GroupID:           groupID,
		CategoryID:        categoryID,
		ProductID:         productID,
		Name:              req.Name,
		Brand:             req.Brand,
		PurchasedQuantity: req.PurchasedQuantity,
		Notes:             req.Notes,
		IsPurchased:       req.IsPurchased,
	}
	if req.Price != nil {
		price := dto.PriceFromFloat(*req.Price)
		input.Price = &price
	}

	if _, err := c.updateProductUseCase.Execute(ctx.Request.Context(), input); err != nil {
		handleChecklistError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Product updated"})
}

// DeleteProduct handles DELETE .../products/:productId requests.
func (c *ChecklistController) DeleteProduct(ctx *gin.Context) {
	owner, ok := treeOwner(ctx)
	if !ok {
		return
	}
	groupID, ok := pathID(ctx, "groupId")
	if !ok {
		return
	}
	categoryID, ok := pathID(ctx, "categoryId")
	if !ok {
		return
	}
	productID, ok := pathID(ctx, "productId")
	if !ok {
		return
	}

	if _, err := c.deleteProductUseCase.Execute(ctx.Request.Context(), checklist.DeleteProductInput{
		Owner:      owner,
		GroupID:    groupID,
		CategoryID: categoryID,
		ProductID:  productID,
	}); err != nil {
		handleChecklistError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Product deleted"})
}

// treeOwner resolves which tree a request targets: the share middleware's
// owner on /share routes, the authenticated user otherwise.
func treeOwner(ctx *gin.Context) (string, bool) {
	if owner, ok := middleware.GetShareOwnerFromContext(ctx); ok {
		return owner, true
	}
	if username, ok := middleware.GetUsernameFromContext(ctx); ok {
		return username, true
	}
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "Authentication required",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
	return "", false
}

// pathID parses a uuid path parameter, responding with 400 on garbage.
func pathID(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + name,
			Code:  string(domainerror.ErrCodeMissingChecklistField),
		})
		return uuid.Nil, false
	}
	return id, true
}

func badChecklistBody(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Invalid request body",
		Code:  string(domainerror.ErrCodeMissingChecklistField),
	})
}

// handleChecklistError maps checklist errors to HTTP responses.
func handleChecklistError(ctx *gin.Context, err error) {
	var quantityErr *domainerror.QuantityLimitError
	if errors.As(err, &quantityErr) {
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{
			Error:   quantityErr.Error(),
			Code:    string(domainerror.ErrCodeQuantityLimitExceeded),
			Details: "remaining capacity: " + strconv.Itoa(quantityErr.Remaining()),
		})
		return
	}

	var checklistErr *domainerror.ChecklistError
	if errors.As(err, &checklistErr) {
		ctx.JSON(statusCodeForChecklistError(checklistErr.Code), dto.ErrorResponse{
			Error: checklistErr.Message,
			Code:  string(checklistErr.Code),
		})
		return
	}

	switch {
	case errors.Is(err, domainerror.ErrGroupNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Group not found",
			Code:  string(domainerror.ErrCodeGroupNotFound),
		})
	case errors.Is(err, domainerror.ErrCategoryNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Category not found",
			Code:  string(domainerror.ErrCodeCategoryNotFound),
		})
	case errors.Is(err, domainerror.ErrProductNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Product not found",
			Code:  string(domainerror.ErrCodeProductNotFound),
		})
	case errors.Is(err, domainerror.ErrUserNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "User not found",
			Code:  string(domainerror.ErrCodeUserNotFound),
		})
	case errors.Is(err, domainerror.ErrBackendUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "Storage backend unavailable; retry shortly",
			Code:  string(domainerror.ErrCodeBackendUnavailable),
		})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

// statusCodeForChecklistError maps checklist error codes to HTTP status codes.
func statusCodeForChecklistError(code domainerror.ChecklistErrorCode) int {
	switch code {
	case domainerror.ErrCodeGroupNotFound,
		domainerror.ErrCodeCategoryNotFound,
		domainerror.ErrCodeProductNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNameRequired,
		domainerror.ErrCodeMissingChecklistField:
		return http.StatusBadRequest
	case domainerror.ErrCodeQuantityLimitExceeded:
		return http.StatusConflict
	case domainerror.ErrCodeReadOnlyAccess:
		return http.StatusForbidden
	case domainerror.ErrCodeBackendUnavailable:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeSubscriptionUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
