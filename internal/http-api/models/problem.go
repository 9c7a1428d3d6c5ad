package models

// Problem maps the problem table. Column names keep their camelCase spelling.
type Problem struct {
	ID                uint    `gorm:"type:int;primaryKey;autoIncrement:false" json:"id"`
	Form              *string `gorm:"column:form;size:128" json:"form,omitempty"`
	Name              *string `gorm:"column:name;size:128" json:"name,omitempty"`
	Nickname          *string `gorm:"column:nickname;size:128" json:"nickname,omitempty"`
	AnimationResource *string `gorm:"column:animationResource;size:128" json:"animationResource,omitempty"`
	Answer            *string `gorm:"column:answer;size:128" json:"answer,omitempty"`
	AudioResource     *string `gorm:"column:audioResource;size:128" json:"audioResource,omitempty"`
	Creator           *string `gorm:"column:creator;size:128" json:"creator,omitempty"`
	LastModifier      *string `gorm:"column:lastModifier;size:128" json:"lastModifier,omitempty"`
	Status            *string `gorm:"column:status;size:128" json:"status,omitempty"`
	StatementHTML     *string `gorm:"column:statementHTML;size:128" json:"statementHTML,omitempty"`
	ImageURL          *string `gorm:"column:imageURL;size:128" json:"imageURL,omitempty"`
}

func (Problem) TableName() string {
	return "problem"
}
