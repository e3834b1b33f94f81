package api

import "chatbackend/models"

// DomainUserToAPIUser converts a domain User model to an API UserModel
func DomainUserToAPIUser(domainUser *models.User) *UserModel {
	if domainUser == nil {
		return nil
	}

	return &UserModel{
		ID:          domainUser.ID,
		DisplayName: domainUser.DisplayName,
		CreatedAt:   domainUser.CreatedAt,
		UpdatedAt:   domainUser.UpdatedAt,
	}
}

// DomainChatToAPIChat converts a domain Chat model to an API ChatModel
func DomainChatToAPIChat(domainChat *models.Chat) *ChatModel {
	if domainChat == nil {
		return nil
	}

	return &ChatModel{
		ID:        domainChat.ID,
		Name:      domainChat.Name,
		CreatedBy: domainChat.CreatedBy,
		CreatedAt: domainChat.CreatedAt,
		UpdatedAt: domainChat.UpdatedAt,
	}
}

// DomainChatsToAPIChats converts a slice of domain Chat models to API ChatModels
func DomainChatsToAPIChats(domainChats []*models.Chat) []*ChatModel {
	apiChats := make([]*ChatModel, 0, len(domainChats))
	for _, chat := range domainChats {
		apiChats = append(apiChats, DomainChatToAPIChat(chat))
	}
	return apiChats
}

// DomainMessageToAPIMessage converts a domain Message model to an API MessageModel
func DomainMessageToAPIMessage(domainMessage *models.Message) *MessageModel {
	if domainMessage == nil {
		return nil
	}

	return &MessageModel{
		ID:       domainMessage.ID,
		ChatID:   domainMessage.ChatID,
		AuthorID: domainMessage.AuthorID,
		Content:  domainMessage.Content,
		SentAt:   domainMessage.SentAt,
	}
}

// DomainMessagesToAPIMessages converts a slice of domain Message models to API MessageModels
func DomainMessagesToAPIMessages(domainMessages []*models.Message) []*MessageModel {
	apiMessages := make([]*MessageModel, 0, len(domainMessages))
	for _, message := range domainMessages {
		apiMessages = append(apiMessages, DomainMessageToAPIMessage(message))
	}
	return apiMessages
}
