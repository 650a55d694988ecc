package mobilizon

// operationName must match the operation defined in searchQuery.
const operationName = "SearchEventsAndGroups"

// searchQuery is the document the Mobilizon web client sends for its search page.
const searchQuery = `query SearchEventsAndGroups($location: String, $radius: Float, $tags: String, $term: String, $type: EventType, $beginsOn: DateTime, $endsOn: DateTime, $eventPage: Int, $groupPage: Int, $limit: Int) {
  searchEvents(
    location: $location
    radius: $radius
    tags: $tags
    term: $term
    type: $type
    beginsOn: $beginsOn
    endsOn: $endsOn
    page: $eventPage
    limit: $limit
  ) {
    total
    elements {
      id
      title
      uuid
      beginsOn
      picture {
        id
        url
        __typename
      }
      status
      tags {
        ...TagFragment
        __typename
      }
      physicalAddress {
        ...AdressFragment
        __typename
      }
      organizerActor {
        ...ActorFragment
        __typename
      }
      attributedTo {
        ...ActorFragment
        __typename
      }
      options {
        ...EventOptions
        __typename
      }
      __typename
    }
    __typename
  }
  searchGroups(
    term: $term
    location: $location
    radius: $radius
    page: $groupPage
    limit: $limit
  ) {
    total
    elements {
      ...ActorFragment
      banner {
        id
        url
        __typename
      }
      members(roles: "member,moderator,administrator,creator") {
        total
        __typename
      }
      followers(approved: true) {
        total
        __typename
      }
      physicalAddress {
        ...AdressFragment
        __typename
      }
      __typename
    }
    __typename
  }
}

fragment EventOptions on EventOptions {
  maximumAttendeeCapacity
  remainingAttendeeCapacity
  showRemainingAttendeeCapacity
  anonymousParticipation
  showStartTime
  showEndTime
  timezone
  offers {
    price
    priceCurrency
    url
    __typename
  }
  participationConditions {
    title
    content
    url
    __typename
  }
  attendees
  program
  commentModeration
  showParticipationPrice
  hideOrganizerWhenGroupEvent
  isOnline
  __typename
}

fragment TagFragment on Tag {
  id
  slug
  title
  __typename
}

fragment AdressFragment on Address {
  id
  description
  geom
  street
  locality
  postalCode
  region
  country
  type
  url
  originId
  timezone
  __typename
}

fragment ActorFragment on Actor {
  id
  avatar {
    id
    url
    __typename
  }
  type
  preferredUsername
  name
  domain
  summary
  url
  __typename
}`
