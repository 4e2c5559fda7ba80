package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flipcart-next/internal/constants"
	"github.com/flipcart-next/internal/logger"
	"github.com/flipcart-next/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCartRepository Mongo 实现，字段名与历史购物车集合保持一致
type MongoCartRepository struct {
	collection *mongo.Collection
}

// NewMongoCartRepository 创建 Mongo 购物车仓库
func NewMongoCartRepository(db *mongo.Database, collection string) *MongoCartRepository {
	if collection == "" {
		collection = "carts"
	}
	return &MongoCartRepository{collection: db.Collection(collection)}
}

// EnsureIndexes 创建购物车集合索引
// 历史数据中已存在重复 active 文档时唯一索引会失败，此时仅告警
func (r *MongoCartRepository) EnsureIndexes(ctx context.Context) error {
	if _, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	}); err != nil {
		return fmt.Errorf("create userId index failed: %w", err)
	}

	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}},
		Options: options.Index().
			SetName("uniq_active_cart_per_user").
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"status": constants.CartStatusActive}),
	})
	if err != nil {
		logger.Warnw("mongo_cart_unique_index_skipped", "error", err)
	}
	return nil
}

// ListAll 获取全部购物车文档
func (r *MongoCartRepository) ListAll(ctx context.Context) ([]models.CartDocument, error) {
	return r.find(ctx, bson.M{})
}

// ListByUser 获取用户全部购物车文档
func (r *MongoCartRepository) ListByUser(ctx context.Context, userID models.EntityID) ([]models.CartDocument, error) {
	return r.find(ctx, bson.M{"userId": userID.String()})
}

func (r *MongoCartRepository) find(ctx context.Context, filter bson.M) ([]models.CartDocument, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find carts failed: %w", err)
	}
	carts := make([]models.CartDocument, 0)
	if err := cursor.All(ctx, &carts); err != nil {
		return nil, fmt.Errorf("decode carts failed: %w", err)
	}
	return carts, nil
}

// AddItem 先尝试对已有购物车项 $inc，未命中再以 upsert 方式 $push
func (r *MongoCartRepository) AddItem(ctx context.Context, userID, productID models.EntityID, quantity int) (*models.CartDocument, error) {
	cart, err := r.incrementItem(ctx, userID, productID, quantity)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	cart, err = r.pushItem(ctx, userID, productID, quantity)
	if err == nil {
		return cart, nil
	}
	if mongo.IsDuplicateKeyError(err) {
		// 并发插入了同一商品或同一 active 文档，此时累加必然命中
		return r.incrementItem(ctx, userID, productID, quantity)
	}
	return nil, err
}

func (r *MongoCartRepository) incrementItem(ctx context.Context, userID, productID models.EntityID, quantity int) (*models.CartDocument, error) {
	filter := activeCartFilter(userID)
	filter["items.productId"] = productID.String()
	update := bson.M{
		"$inc": bson.M{"items.$.quantity": quantity},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetReturnDocument(options.After)

	var cart models.CartDocument
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cart); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("increment cart item failed: %w", err)
	}
	return &cart, nil
}

func (r *MongoCartRepository) pushItem(ctx context.Context, userID, productID models.EntityID, quantity int) (*models.CartDocument, error) {
	now := time.Now()
	filter := activeCartFilter(userID)
	filter["items.productId"] = bson.M{"$ne": productID.String()}
	// $or 条件不参与 upsert 插入，status 需显式写入
	update := bson.M{
		"$push":        bson.M{"items": models.CartLineItem{ProductID: productID, Quantity: quantity}},
		"$set":         bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now, "status": constants.CartStatusActive},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetReturnDocument(options.After)

	var cart models.CartDocument
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cart); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("push cart item failed: %w", err)
	}
	return &cart, nil
}

// DeleteByID 删除购物车文档，兼容 ObjectID 与字符串主键
func (r *MongoCartRepository) DeleteByID(ctx context.Context, id models.EntityID) (int64, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": bson.M{"$in": documentIDCandidates(id)}})
	if err != nil {
		return 0, fmt.Errorf("delete cart failed: %w", err)
	}
	return result.DeletedCount, nil
}

// Consolidate 将待删除文档的购物车项逐个累加到保留文档，全部迁移后才删除原文档
// 每迁移一个商品即从原文档 $pull，失败重试时不会重复累加
func (r *MongoCartRepository) Consolidate(ctx context.Context, keepID models.EntityID, dropIDs []models.EntityID) (int, error) {
	keepFilter := bson.M{"_id": bson.M{"$in": documentIDCandidates(keepID)}}
	if err := r.collection.FindOne(ctx, keepFilter).Err(); err != nil {
		return 0, fmt.Errorf("find kept cart failed: %w", err)
	}
	if len(dropIDs) == 0 {
		return 0, nil
	}

	// 数量 0 在视图中按 1 计，累加前先落实
	_, err := r.collection.UpdateOne(ctx, keepFilter,
		bson.M{"$set": bson.M{"items.$[zero].quantity": 1}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"zero.quantity": 0}},
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("normalize kept cart failed: %w", err)
	}

	moved := 0
	for _, id := range dropIDs {
		dropFilter := bson.M{"_id": bson.M{"$in": documentIDCandidates(id)}}
		var dropped models.CartDocument
		if err := r.collection.FindOne(ctx, dropFilter).Decode(&dropped); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				continue
			}
			return moved, fmt.Errorf("load merged cart failed: %w", err)
		}
		for _, item := range sumLinesByProduct(dropped.Items) {
			if err := r.mergeLine(ctx, keepFilter, item); err != nil {
				return moved, err
			}
			if _, err := r.collection.UpdateOne(ctx, dropFilter,
				bson.M{"$pull": bson.M{"items": bson.M{"productId": item.ProductID.String()}}},
			); err != nil {
				return moved, fmt.Errorf("pull merged item failed: %w", err)
			}
			moved++
		}
		if _, err := r.collection.DeleteOne(ctx, dropFilter); err != nil {
			return moved, fmt.Errorf("delete merged cart failed: %w", err)
		}
	}

	_, err = r.collection.UpdateOne(ctx, keepFilter, bson.M{"$set": bson.M{
		"status":    constants.CartStatusActive,
		"updatedAt": time.Now(),
	}})
	if err != nil {
		return moved, fmt.Errorf("activate kept cart failed: %w", err)
	}
	return moved, nil
}

// mergeLine 对保留文档执行“存在则 $inc，否则 $push”
func (r *MongoCartRepository) mergeLine(ctx context.Context, keepFilter bson.M, item models.CartLineItem) error {
	for attempt := 0; attempt < 2; attempt++ {
		incFilter := bson.M{"_id": keepFilter["_id"], "items.productId": item.ProductID.String()}
		result, err := r.collection.UpdateOne(ctx, incFilter, bson.M{"$inc": bson.M{"items.$.quantity": item.Quantity}})
		if err != nil {
			return fmt.Errorf("increment merged item failed: %w", err)
		}
		if result.MatchedCount > 0 {
			return nil
		}
		pushFilter := bson.M{"_id": keepFilter["_id"], "items.productId": bson.M{"$ne": item.ProductID.String()}}
		result, err = r.collection.UpdateOne(ctx, pushFilter, bson.M{"$push": bson.M{"items": item}})
		if err != nil {
			return fmt.Errorf("push merged item failed: %w", err)
		}
		if result.MatchedCount > 0 {
			return nil
		}
		// 并发加购刚插入同一商品，再走一次 $inc
	}
	return fmt.Errorf("merge item %s into cart failed: %w", item.ProductID, mongo.ErrNoDocuments)
}

// activeCartFilter 匹配用户的 active 购物车，历史文档没有 status 字段也视为 active
func activeCartFilter(userID models.EntityID) bson.M {
	return bson.M{
		"userId": userID.String(),
		"$or": bson.A{
			bson.M{"status": constants.CartStatusActive},
			bson.M{"status": bson.M{"$exists": false}},
		},
	}
}

func documentIDCandidates(id models.EntityID) []interface{} {
	candidates := []interface{}{id.String()}
	if oid, err := primitive.ObjectIDFromHex(id.String()); err == nil {
		candidates = append(candidates, oid)
	}
	return candidates
}
