package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/redeescolar/school-portal/internal/core/domain"
	"github.com/redeescolar/school-portal/internal/core/ports"
)

const studentCollection = "students"

type MongoStudentRepository struct {
	coll *mongo.Collection
}

func NewStudentRepository(db *mongo.Database) *MongoStudentRepository {
	return &MongoStudentRepository{coll: db.Collection(studentCollection)}
}

type mongoStudent struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Enrollment string             `bson:"enrollment"`
	SchoolID   string             `bson:"school_id"`
	ClassID    string             `bson:"class_id,omitempty"`
	GuardianID string             `bson:"guardian_id,omitempty"`
	BirthDate  time.Time          `bson:"birth_date"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (r *MongoStudentRepository) Create(ctx context.Context, s *domain.Student) error {
	doc := mongoStudent{
		Name:       s.Name,
		Enrollment: s.Enrollment,
		SchoolID:   s.SchoolID,
		ClassID:    s.ClassID,
		GuardianID: s.GuardianID,
		BirthDate:  s.BirthDate,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid.Hex()
	}
	return nil
}

func (r *MongoStudentRepository) FindByID(ctx context.Context, id, schoolID string) (*domain.Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStudentNotFound
	}

	query := bson.M{"_id": oid}
	if schoolID != "" {
		query["school_id"] = schoolID
	}

	var ms mongoStudent
	if err := r.coll.FindOne(ctx, query).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrStudentNotFound
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	return ms.toDomain(), nil
}

func (r *MongoStudentRepository) List(ctx context.Context, filter ports.StudentFilter) ([]*domain.Student, int64, error) {
	query := bson.M{}
	if filter.SchoolID != "" {
		query["school_id"] = filter.SchoolID
	}
	if filter.ClassID != "" {
		query["class_id"] = filter.ClassID
	}
	if filter.Search != "" {
		pattern := searchRegex(filter.Search)
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"enrollment": pattern},
		}
	}

	total, err := r.coll.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}
	defer cursor.Close(ctx)

	var students []*domain.Student
	for cursor.Next(ctx) {
		var ms mongoStudent
		if err := cursor.Decode(&ms); err != nil {
			return nil, 0, fmt.Errorf("decode student: %w", err)
		}
		students = append(students, ms.toDomain())
	}
	return students, total, cursor.Err()
}

// searchRegex builds a case-insensitive substring match. The term is a
// user-supplied string, never a pattern, so regex metacharacters are escaped.
func searchRegex(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}

func (ms *mongoStudent) toDomain() *domain.Student {
	return &domain.Student{
		ID:         ms.ID.Hex(),
		Name:       ms.Name,
		Enrollment: ms.Enrollment,
		SchoolID:   ms.SchoolID,
		ClassID:    ms.ClassID,
		GuardianID: ms.GuardianID,
		BirthDate:  ms.BirthDate,
		CreatedAt:  ms.CreatedAt,
		UpdatedAt:  ms.UpdatedAt,
	}
}
