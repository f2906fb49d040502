package dto

import (
	"mime/multipart"

	"lodge/internal/domains/room/model"
	"lodge/shared"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name       string                `json:"name"         validate:"required,max=100"`
	RoomTypeID string                `json:"room_type_id" validate:"omitempty,max=100"`
	Image      *multipart.FileHeader `json:"image"        validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile  multipart.File        `json:"-"`
	Active     *bool                 `json:"active"       validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	return model.Room{
		ID:         uuid.NewString(),
		Name:       c.Name,
		RoomTypeID: c.RoomTypeID,
		Status:     model.StatusAvailable,
		Image:      imageURL,
		Active:     active,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Name       string                `db:"name"         json:"name"         validate:"omitempty,max=100"`
	RoomTypeID string                `db:"room_type_id" json:"room_type_id" validate:"omitempty,max=100"`
	Image      *multipart.FileHeader `json:"image"      validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile  multipart.File        `json:"-"`
	Active     *bool                 `db:"active"       json:"active"       validate:"omitempty"`
}

type RoomResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	RoomTypeID    string `json:"room_type_id"`
	Status        string `json:"status"`
	RestockTowels bool   `json:"restock_towels"`
	RestockSoap   bool   `json:"restock_soap"`
	Image         string `json:"image"`
	Active        bool   `json:"active"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.RoomTypeID = model.RoomTypeID
	r.Status = model.Status
	r.RestockTowels = model.RestockTowels
	r.RestockSoap = model.RestockSoap
	r.Image = model.Image
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
