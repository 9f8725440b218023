package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/guttosm/bundle-service/internal/domain/model"
)

// BundleDocument is the stored form of a bundle.
type BundleDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Slug            string             `bson:"slug"`
	Name            string             `bson:"name"`
	Description     string             `bson:"description"`
	DiscountPercent float64            `bson:"discount_percent"`
	FixedPrice      *float64           `bson:"fixed_price"`
	ImageURL        string             `bson:"image_url,omitempty"`
	Items           []ItemDocument     `bson:"items"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

// ItemDocument is the stored form of a bundle item.
type ItemDocument struct {
	Category  string `bson:"category,omitempty"`
	Keyword   string `bson:"keyword,omitempty"`
	ProductID string `bson:"product_id,omitempty"`
}

func toDocument(b *model.Bundle) BundleDocument {
	items := make([]ItemDocument, len(b.Items))
	for i, it := range b.Items {
		items[i] = ItemDocument{Category: it.Category, Keyword: it.Keyword, ProductID: string(it.ProductID)}
	}
	doc := BundleDocument{
		Slug:            b.ID,
		Name:            b.Name,
		Description:     b.Description,
		DiscountPercent: b.DiscountPercent,
		FixedPrice:      b.FixedPrice,
		ImageURL:        b.ImageURL,
		Items:           items,
	}
	if b.CreatedAt != nil {
		doc.CreatedAt = *b.CreatedAt
	}
	if b.UpdatedAt != nil {
		doc.UpdatedAt = *b.UpdatedAt
	}
	return doc
}

func (d BundleDocument) toModel() model.Bundle {
	items := make([]model.BundleItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = model.BundleItem{Category: it.Category, Keyword: it.Keyword, ProductID: model.ProductID(it.ProductID)}
	}
	created, updated := d.CreatedAt.UTC(), d.UpdatedAt.UTC()
	return model.Bundle{
		ID:              d.Slug,
		Slug:            d.Slug,
		Name:            d.Name,
		Description:     d.Description,
		DiscountPercent: d.DiscountPercent,
		FixedPrice:      d.FixedPrice,
		ImageURL:        d.ImageURL,
		Items:           items,
		CreatedAt:       &created,
		UpdatedAt:       &updated,
	}
}

// BundleRepository stores bundles in MongoDB.
type BundleRepository struct {
	collection *mongo.Collection
}

// NewBundleRepository creates a bundle repository on db.Bundles.
func NewBundleRepository(db *MongoDB) *BundleRepository {
	return &BundleRepository{collection: db.Bundles}
}

// List returns every bundle, oldest first.
func (r *BundleRepository) List(ctx context.Context) ([]model.Bundle, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []BundleDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	bundles := make([]model.Bundle, len(docs))
	for i, d := range docs {
		bundles[i] = d.toModel()
	}
	return bundles, nil
}

// FindBySlug returns ErrNotFound when no bundle has slug.
func (r *BundleRepository) FindBySlug(ctx context.Context, slug string) (*model.Bundle, error) {
	var doc BundleDocument
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	b := doc.toModel()
	return &b, nil
}

// Create inserts bundle and stamps its timestamps.
func (r *BundleRepository) Create(ctx context.Context, bundle *model.Bundle) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	bundle.CreatedAt, bundle.UpdatedAt = &now, &now
	bundle.Slug = bundle.ID

	doc := toDocument(bundle)
	doc.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateSlug
	}
	return err
}

// Update overwrites the editable fields of the bundle with bundle.ID.
func (r *BundleRepository) Update(ctx context.Context, bundle *model.Bundle) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	doc := toDocument(bundle)

	var updated BundleDocument
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"slug": bundle.ID},
		bson.M{"$set": bson.M{
			"name":             doc.Name,
			"description":      doc.Description,
			"discount_percent": doc.DiscountPercent,
			"fixed_price":      doc.FixedPrice,
			"image_url":        doc.ImageURL,
			"items":            doc.Items,
			"updated_at":       now,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	*bundle = updated.toModel()
	return nil
}

// Delete removes the bundle with slug.
func (r *BundleRepository) Delete(ctx context.Context, slug string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
