package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// productsコレクションのドキュメント
type productDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Slug             string             `bson:"slug"`
	Description      string             `bson:"description"`
	ShortDescription string             `bson:"shortDescription,omitempty"`
	Price            float64            `bson:"price"`
	Images           []string           `bson:"images"`
	Category         string             `bson:"category"`
	Stock            int                `bson:"stock"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

func toDocument(p model.Product) productDocument {
	return productDocument{
		Name:             p.Name,
		Slug:             p.Slug,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Price:            p.Price,
		Images:           p.Images,
		Category:         p.Category,
		Stock:            p.Stock,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func (d productDocument) toModel() model.Product {
	return model.Product{
		ID:               d.ID.Hex(),
		Name:             d.Name,
		Slug:             d.Slug,
		Description:      d.Description,
		ShortDescription: d.ShortDescription,
		Price:            d.Price,
		Images:           d.Images,
		Category:         d.Category,
		Stock:            d.Stock,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

type ProductMongoRepository struct {
	collection *mongo.Collection
}

// DI
func NewProductMongoRepository(db *mongo.Database) *ProductMongoRepository {
	return &ProductMongoRepository{collection: db.Collection("products")}
}

// slugのunique、name/descriptionのtext index
func (r *ProductMongoRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "name", Value: "text"}, {Key: "description", Value: "text"}},
		},
		{
			Keys: bson.D{{Key: "category", Value: 1}},
		},
	}

	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// 検索（$text）とページング付きで返す。新しい順。
func (r *ProductMongoRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	filter := bson.M{}
	if s := strings.TrimSpace(q.Search); s != "" {
		filter["$text"] = bson.M{"$search": s}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return []model.Product{}, 0, fmt.Errorf("failed to count products: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(q.Offset())).
		SetLimit(int64(q.Limit))

	cur, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return []model.Product{}, 0, fmt.Errorf("failed to find products: %w", err)
	}
	defer cur.Close(ctx)

	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return []model.Product{}, 0, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]model.Product, 0, len(docs))
	for _, d := range docs {
		products = append(products, d.toModel())
	}
	return products, total, nil
}

// IDで商品を取得。ObjectIDとして不正なら not found。
func (r *ProductMongoRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.Product{}, repo.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *ProductMongoRepository) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	return r.findOne(ctx, bson.M{"slug": strings.ToLower(strings.TrimSpace(slug))})
}

func (r *ProductMongoRepository) findOne(ctx context.Context, filter bson.M) (model.Product, error) {
	var d productDocument
	err := r.collection.FindOne(ctx, filter).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return d.toModel(), nil
}

// 商品の作成
func (r *ProductMongoRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	stamp(&p, time.Now())

	res, err := r.collection.InsertOne(ctx, toDocument(p))
	if mongo.IsDuplicateKeyError(err) {
		return model.Product{}, repo.ErrDuplicate
	}
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid.Hex()
	}
	return p, nil
}

// 全削除してから一括投入
func (r *ProductMongoRepository) ReplaceAll(ctx context.Context, products []model.Product) (int, error) {
	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return 0, fmt.Errorf("failed to clear products: %w", err)
	}
	if len(products) == 0 {
		return 0, nil
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(products))
	for i := range products {
		p := products[i]
		stamp(&p, now)
		docs = append(docs, toDocument(p))
	}

	res, err := r.collection.InsertMany(ctx, docs)
	if mongo.IsDuplicateKeyError(err) {
		return 0, repo.ErrDuplicate
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert products: %w", err)
	}
	return len(res.InsertedIDs), nil
}

func stamp(p *model.Product, now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}
