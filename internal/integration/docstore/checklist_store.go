package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dowry-planner/backend/internal/application/adapter"
	"github.com/dowry-planner/backend/internal/domain/entity"
	domainerror "github.com/dowry-planner/backend/internal/domain/error"
)

// ChecklistStore implements adapter.ChecklistRepository on Redis. It also
// provides the optional TreeSubscriber and TreeMigrator capabilities: every
// mutation touches the parent group's timestamp and publishes a change event
// on the owner's channel.
//
// Subtree creation is atomic (one transactional pipeline). Deletion is not:
// keys are collected first and removed in bounded rounds, so a reader can
// observe a partially deleted subtree for a moment.
type ChecklistStore struct {
	client *redis.Client
}

// NewChecklistStore creates a Redis-backed checklist store.
func NewChecklistStore(client *redis.Client) *ChecklistStore {
	return &ChecklistStore{
		client: client,
	}
}

// FetchTree reconstructs the owner's full tree. Sibling collections are
// fetched concurrently at every level; the levels themselves are sequential
// because child keys depend on parent ids. Every level comes back ordered by
// creation time ascending.
func (s *ChecklistStore) FetchTree(ctx context.Context, owner string) ([]*entity.Group, error) {
	raw, err := s.client.HGetAll(ctx, groupsKey(owner)).Result()
	if err != nil {
		return nil, domainerror.NewBackendUnavailableError("fetch tree", err)
	}

	groups := make([]*entity.Group, 0, len(raw))
	for _, payload := range raw {
		var doc groupDoc
		if err := json.Unmarshal([]byte(payload), &doc); err != nil {
			return nil, fmt.Errorf("corrupt group document: %w", err)
		}
		groups = append(groups, doc.toEntity())
	}
	sortGroups(groups)

	eg, egCtx := errgroup.WithContext(ctx)
	for _, group := range groups {
		group := group
		eg.Go(func() error {
			categories, err := s.fetchCategories(egCtx, owner, group.ID)
			if err != nil {
				return err
			}
			group.Categories = categories
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return groups, nil
}

func (s *ChecklistStore) fetchCategories(ctx context.Context, owner string, groupID uuid.UUID) ([]*entity.Category, error) {
	raw, err := s.client.HGetAll(ctx, categoriesKey(owner, groupID)).Result()
	if err != nil {
		return nil, domainerror.NewBackendUnavailableError("fetch categories", err)
	}

	categories := make([]*entity.Category, 0, len(raw))
	for _, payload := range raw {
		var doc categoryDoc
		if err := json.Unmarshal([]byte(payload), &doc); err != nil {
			return nil, fmt.Errorf("corrupt category document: %w", err)
		}
		categories = append(categories, doc.toEntity())
	}
	sortCategories(categories)

	eg, egCtx := errgroup.WithContext(ctx)
	for _, category := range categories {
		category := category
		eg.Go(func() error {
			products, err := s.fetchProducts(egCtx, owner, groupID, category.ID)
			if err != nil {
				return err
			}
			category.Products = products
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (s *ChecklistStore) fetchProducts(ctx context.Context, owner string, groupID, categoryID uuid.UUID) ([]*entity.Product, error) {
	raw, err := s.client.HGetAll(ctx, productsKey(owner, groupID, categoryID)).Result()
	if err != nil {
		return nil, domainerror.NewBackendUnavailableError("fetch products", err)
	}

	products := make([]*entity.Product, 0, len(raw))
	for _, payload := range raw {
		var doc productDoc
		if err := json.Unmarshal([]byte(payload), &doc); err != nil {
			return nil, fmt.Errorf("corrupt product document: %w", err)
		}
		products = append(products, doc.toEntity())
	}
	sortProducts(products)

	return products, nil
}

// CreateGroup inserts a single empty group document.
func (s *ChecklistStore) CreateGroup(ctx context.Context, owner string, group *entity.Group) error {
	payload, err := json.Marshal(groupDocFromEntity(group))
	if err != nil {
		return err
	}
	if err := s.client.HSet(ctx, groupsKey(owner), group.ID.String(), payload).Err(); err != nil {
		return domainerror.NewBackendUnavailableError("create group", err)
	}
	s.publish(ctx, owner, "group.created")
	return nil
}

// CreateGroupWithHierarchy writes the whole subtree in one transactional
// pipeline so readers see all of it or none of it. Product purchase state is
// forced back to zero regardless of what the entities carry.
func (s *ChecklistStore) CreateGroupWithHierarchy(ctx context.Context, owner string, group *entity.Group) error {
	pipe := s.client.TxPipeline()

	groupPayload, err := json.Marshal(groupDocFromEntity(group))
	if err != nil {
		return err
	}
	pipe.HSet(ctx, groupsKey(owner), group.ID.String(), groupPayload)

	for _, category := range group.Categories {
		category.GroupID = group.ID
		categoryPayload, err := json.Marshal(categoryDocFromEntity(category))
		if err != nil {
			return err
		}
		pipe.HSet(ctx, categoriesKey(owner, group.ID), category.ID.String(), categoryPayload)

		for _, product := range category.Products {
			product.CategoryID = category.ID
			doc := productDocFromEntity(product)
			doc.PurchasedQuantity = 0
			doc.IsPurchased = false
			productPayload, err := json.Marshal(doc)
			if err != nil {
				return err
			}
			pipe.HSet(ctx, productsKey(owner, group.ID, category.ID), product.ID.String(), productPayload)
		}
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return domainerror.NewBackendUnavailableError("create group hierarchy", err)
	}
	s.publish(ctx, owner, "group.imported")
	return nil
}

// UpdateGroup rewrites the group document with non-nil fields applied.
func (s *ChecklistStore) UpdateGroup(ctx context.Context, owner string, groupID uuid.UUID, updates adapter.GroupUpdates) error {
	doc, err := s.readGroupDoc(ctx, owner, groupID)
	if err != nil {
		return err
	}
	if doc == nil {
		return domainerror.ErrGroupNotFound
	}

	if updates.Name != nil {
		doc.Name = *updates.Name
	}
	if updates.Icon != nil {
		doc.Icon = *updates.Icon
	}
	if updates.Color != nil {
		doc.Color = *updates.Color
	}
	doc.UpdatedAt = time.Now().UTC()

	if err := s.writeGroupDoc(ctx, owner, *doc); err != nil {
		return err
	}
	s.publish(ctx, owner, "group.updated")
	return nil
}

// DeleteGroup removes a group and its whole subtree. Keys are collected
// first, then deleted in rounds of at most deleteChunkSize.
func (s *ChecklistStore) DeleteGroup(ctx context.Context, owner string, groupID uuid.UUID) error {
	doc, err := s.readGroupDoc(ctx, owner, groupID)
	if err != nil {
		return err
	}
	if doc == nil {
		return domainerror.ErrGroupNotFound
	}

	keys, err := s.subtreeKeys(ctx, owner, groupID)
	if err != nil {
		return err
	}
	if err := s.deleteKeys(ctx, keys); err != nil {
		return err
	}

	if err := s.client.HDel(ctx, groupsKey(owner), groupID.String()).Err(); err != nil {
		return domainerror.NewBackendUnavailableError("delete group", err)
	}
	s.publish(ctx, owner, "group.deleted")
	return nil
}

// AddCategory inserts a category document under an existing group.
func (s *ChecklistStore) AddCategory(ctx context.Context, owner string, groupID uuid.UUID, category *entity.Category) error {
	doc, err := s.readGroupDoc(ctx, owner, groupID)
	if err != nil {
		return err
	}
	if doc == nil {
		return domainerror.ErrGroupNotFound
	}

	category.GroupID = groupID
	payload, err := json.Marshal(categoryDocFromEntity(category))
	if err != nil {
		return err
	}
	if err := s.client.HSet(ctx, categoriesKey(owner, groupID), category.ID.String(), payload).Err(); err != nil {
		return domainerror.NewBackendUnavailableError("add category", err)
	}

	s.touchGroup(ctx, owner, groupID)
	s.publish(ctx, owner, "category.created")
	return nil
}

// FindCategory retrieves one category with its products loaded, or nil, nil
// when the path does not resolve.
func (s *ChecklistStore) FindCategory(ctx context.Context, owner string, groupID, categoryID uuid.UUID) (*entity.Category, error) {
	doc, err := s.readCategoryDoc(ctx, owner, groupID, categoryID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	category := doc.toEntity()
	products, err := s.fetchProducts(ctx, owner, groupID, categoryID)
	if err != nil {
		return nil, err
	}
	category.Products = products
	return category, nil
}

// UpdateCategory rewrites the category document with non-nil fields applied.
func (s *ChecklistStore) UpdateCategory(ctx context.Context, owner string, groupID, categoryID uuid.UUID, updates adapter.CategoryUpdates) error {
	doc, err := s.readCategoryDoc(ctx, owner, groupID, categoryID)
	if err != nil {
		return err
	}
	if doc == nil {
		return domainerror.ErrCategoryNotFound
	}

	if updates.Name != nil {
		doc.Name = *updates.Name
	}
	if updates.Description != nil {
		doc.Description = *updates.Description
	}
	if updates.TargetQuantity != nil {
		doc.TargetQuantity = *updates.TargetQuantity
	}
	if updates.IsCompleted != nil {
		doc.IsCompleted = *updates.IsCompleted
	}
	doc.UpdatedAt = time.Now().UTC()

	if err := s.writeCategoryDoc(ctx, owner, groupID, *doc); err != nil {
		return err
	}

	s.touchGroup(ctx, owner, groupID)
	s.publish(ctx, owner, "category.updated")
	return nil
}

// DeleteCategory removes the category document and its product collection.
func (s *ChecklistStore) DeleteCategory(ctx context.Context, owner string, groupID, categoryID uuid.UUID) error {
	removed, err := s.client.HDel(ctx, categoriesKey(owner, groupID), categoryID.String()).Result()
	if err != nil {
		return domainerror.NewBackendUnavailableError("delete category", err)
	}
	if removed == 0 {
		return domainerror.ErrCategoryNotFound
	}

	if err := s.client.Del(ctx, productsKey(owner, groupID, categoryID)).Err(); err != nil {
		return domainerror.NewBackendUnavailableError("delete category products", err)
	}

	s.touchGroup(ctx, owner, groupID)
	s.publish(ctx, owner, "category.deleted")
	return nil
}

// AddProduct inserts a product document under an existing category.
func (s *ChecklistStore) AddProduct(ctx context.Context, owner string, groupID, categoryID uuid.UUID, product *entity.Product) error {
	doc, err := s.readCategoryDoc(ctx, owner, groupID, categoryID)
	if err != nil {
		return err
	}
	if doc == nil {
		return domainerror.ErrCategoryNotFound
	}

	product.CategoryID = categoryID
	payload, err := json.Marshal(productDocFromEntity(product))
	if err != nil {
		return err
	}
	if err := s.client.HSet(ctx, productsKey(owner, groupID, categoryID), product.ID.String(), payload).Err(); err != nil {
		return domainerror.NewBackendUnavailableError("add product", err)
	}

	s.touchGroup(ctx, owner, groupID)
	s.publish(ctx, owner, "product.created")
	return nil
}

// UpdateProduct rewrites the product document with non-nil fields applied.
func (s *ChecklistStore) UpdateProduct(ctx context.Context, owner string, groupID, categoryID, productID uuid.UUID, updates adapter.ProductUpdates) error {
	doc, err := s.readProductDoc(ctx, owner, groupID, categoryID, productID)
	if err != nil {
		return err
	}
	if doc == nil {
		return domainerror.ErrProductNotFound
	}

	if updates.Name != nil {
		doc.Name = *updates.Name
	}
	if updates.Brand != nil {
		doc.Brand = *updates.Brand
	}
	if updates.Price != nil {
		doc.Price = *updates.Price
	}
	if updates.PurchasedQuantity != nil {
		doc.PurchasedQuantity = *updates.PurchasedQuantity
	}
	if updates.Notes != nil {
		doc.Notes = *updates.Notes
	}
	if updates.IsPurchased != nil {
		doc.IsPurchased = *updates.IsPurchased
	}
	doc.UpdatedAt = time.Now().UTC()

	payload, err := json.Marshal(*doc)
	if err != nil {
		return err
	}
	if err := s.client.HSet(ctx, productsKey(owner, groupID, categoryID), productID.String(), payload).Err(); err != nil {
		return domainerror.NewBackendUnavailableError("update product", err)
	}

	s.touchGroup(ctx, owner, groupID)
	s.publish(ctx, owner, "product.updated")
	return nil
}

// DeleteProduct removes a single product document.
func (s *ChecklistStore) DeleteProduct(ctx context.Context, owner string, groupID, categoryID, productID uuid.UUID) error {
	removed, err := s.client.HDel(ctx, productsKey(owner, groupID, categoryID), productID.String()).Result()
	if err != nil {
		return domainerror.NewBackendUnavailableError("delete product", err)
	}
	if removed == 0 {
		return domainerror.ErrProductNotFound
	}

	s.touchGroup(ctx, owner, groupID)
	s.publish(ctx, owner, "product.deleted")
	return nil
}

// DeleteTree removes everything the owner holds. Keys are collected first,
// then deleted in bounded rounds; an unknown owner is a no-op.
func (s *ChecklistStore) DeleteTree(ctx context.Context, owner string) error {
	groupFields, err := s.client.HKeys(ctx, groupsKey(owner)).Result()
	if err != nil {
		return domainerror.NewBackendUnavailableError("delete tree", err)
	}

	keys := make([]string, 0, len(groupFields)+1)
	for _, field := range groupFields {
		groupID, err := uuid.Parse(field)
		if err != nil {
			continue
		}
		subtree, err := s.subtreeKeys(ctx, owner, groupID)
		if err != nil {
			return err
		}
		keys = append(keys, subtree...)
	}
	keys = append(keys, groupsKey(owner))

	if err := s.deleteKeys(ctx, keys); err != nil {
		return err
	}
	s.publish(ctx, owner, "tree.deleted")
	return nil
}

// MigrateTree copies every document verbatim under the new owner, then
// removes the old copy. A failure at any point stops the migration and leaves
// both copies as they are; the caller decides what to tell the user.
func (s *ChecklistStore) MigrateTree(ctx context.Context, oldOwner, newOwner string) error {
	groupsRaw, err := s.client.HGetAll(ctx, groupsKey(oldOwner)).Result()
	if err != nil {
		return migrationErr("read groups", err)
	}
	if len(groupsRaw) == 0 {
		return nil
	}

	if err := s.copyHash(ctx, groupsRaw, groupsKey(newOwner)); err != nil {
		return migrationErr("copy groups", err)
	}

	for field := range groupsRaw {
		groupID, err := uuid.Parse(field)
		if err != nil {
			continue
		}

		categoriesRaw, err := s.client.HGetAll(ctx, categoriesKey(oldOwner, groupID)).Result()
		if err != nil {
			return migrationErr("read categories", err)
		}
		if err := s.copyHash(ctx, categoriesRaw, categoriesKey(newOwner, groupID)); err != nil {
			return migrationErr("copy categories", err)
		}

		for categoryField := range categoriesRaw {
			categoryID, err := uuid.Parse(categoryField)
			if err != nil {
				continue
			}
			productsRaw, err := s.client.HGetAll(ctx, productsKey(oldOwner, groupID, categoryID)).Result()
			if err != nil {
				return migrationErr("read products", err)
			}
			if err := s.copyHash(ctx, productsRaw, productsKey(newOwner, groupID, categoryID)); err != nil {
				return migrationErr("copy products", err)
			}
		}
	}

	if err := s.DeleteTree(ctx, oldOwner); err != nil {
		return migrationErr("remove old tree", err)
	}

	s.publish(ctx, newOwner, "tree.migrated")
	return nil
}

func migrationErr(stage string, err error) error {
	return fmt.Errorf("tree migration halted at %s: %w", stage, errors.Join(domainerror.ErrMigrationIncomplete, err))
}

func (s *ChecklistStore) copyHash(ctx context.Context, raw map[string]string, destKey string) error {
	if len(raw) == 0 {
		return nil
	}
	values := make([]interface{}, 0, len(raw)*2)
	for field, payload := range raw {
		values = append(values, field, payload)
	}
	return s.client.HSet(ctx, destKey, values...).Err()
}

// subtreeKeys collects the collection keys below one group: the categories
// hash plus one products hash per category.
func (s *ChecklistStore) subtreeKeys(ctx context.Context, owner string, groupID uuid.UUID) ([]string, error) {
	catKey := categoriesKey(owner, groupID)
	categoryFields, err := s.client.HKeys(ctx, catKey).Result()
	if err != nil {
		return nil, domainerror.NewBackendUnavailableError("collect subtree keys", err)
	}

	keys := make([]string, 0, len(categoryFields)+1)
	keys = append(keys, catKey)
	for _, field := range categoryFields {
		categoryID, err := uuid.Parse(field)
		if err != nil {
			continue
		}
		keys = append(keys, productsKey(owner, groupID, categoryID))
	}
	return keys, nil
}

func (s *ChecklistStore) deleteKeys(ctx context.Context, keys []string) error {
	for start := 0; start < len(keys); start += deleteChunkSize {
		end := start + deleteChunkSize
		if end > len(keys) {
			end = len(keys)
		}
		if err := s.client.Del(ctx, keys[start:end]...).Err(); err != nil {
			return domainerror.NewBackendUnavailableError("delete keys", err)
		}
	}
	return nil
}

func (s *ChecklistStore) readGroupDoc(ctx context.Context, owner string, groupID uuid.UUID) (*groupDoc, error) {
	payload, err := s.client.HGet(ctx, groupsKey(owner), groupID.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, domainerror.NewBackendUnavailableError("read group", err)
	}
	var doc groupDoc
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("corrupt group document: %w", err)
	}
	return &doc, nil
}

func (s *ChecklistStore) writeGroupDoc(ctx context.Context, owner string, doc groupDoc) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := s.client.HSet(ctx, groupsKey(owner), doc.ID.String(), payload).Err(); err != nil {
		return domainerror.NewBackendUnavailableError("write group", err)
	}
	return nil
}

func (s *ChecklistStore) readCategoryDoc(ctx context.Context, owner string, groupID, categoryID uuid.UUID) (*categoryDoc, error) {
	payload, err := s.client.HGet(ctx, categoriesKey(owner, groupID), categoryID.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, domainerror.NewBackendUnavailableError("read category", err)
	}
	var doc categoryDoc
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("corrupt category document: %w", err)
	}
	return &doc, nil
}

func (s *ChecklistStore) writeCategoryDoc(ctx context.Context, owner string, groupID uuid.UUID, doc categoryDoc) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := s.client.HSet(ctx, categoriesKey(owner, groupID), doc.ID.String(), payload).Err(); err != nil {
		return domainerror.NewBackendUnavailableError("write category", err)
	}
	return nil
}

func (s *ChecklistStore) readProductDoc(ctx context.Context, owner string, groupID, categoryID, productID uuid.UUID) (*productDoc, error) {
	payload, err := s.client.HGet(ctx, productsKey(owner, groupID, categoryID), productID.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, domainerror.NewBackendUnavailableError("read product", err)
	}
	var doc productDoc
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("corrupt product document: %w", err)
	}
	return &doc, nil
}

// touchGroup bumps the parent group's UpdatedAt so clients sorting by
// recency see the group move. A missing group is ignored; the mutation that
// triggered the touch has already succeeded.
func (s *ChecklistStore) touchGroup(ctx context.Context, owner string, groupID uuid.UUID) {
	doc, err := s.readGroupDoc(ctx, owner, groupID)
	if err != nil || doc == nil {
		return
	}
	doc.UpdatedAt = time.Now().UTC()
	_ = s.writeGroupDoc(ctx, owner, *doc)
}

func (s *ChecklistStore) publish(ctx context.Context, owner, event string) {
	_ = s.client.Publish(ctx, eventsChannel(owner), event).Err()
}

func sortGroups(groups []*entity.Group) {
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].CreatedAt.Equal(groups[j].CreatedAt) {
			return groups[i].ID.String() < groups[j].ID.String()
		}
		return groups[i].CreatedAt.Before(groups[j].CreatedAt)
	})
}

func sortCategories(categories []*entity.Category) {
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].CreatedAt.Equal(categories[j].CreatedAt) {
			return categories[i].ID.String() < categories[j].ID.String()
		}
		return categories[i].CreatedAt.Before(categories[j].CreatedAt)
	})
}

func sortProducts(products []*entity.Product) {
	sort.Slice(products, func(i, j int) bool {
		if products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].ID.String() < products[j].ID.String()
		}
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
}
